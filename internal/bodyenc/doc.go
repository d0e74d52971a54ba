// Package bodyenc converts response and request bodies between encodings:
// charset transcoding to UTF-8 (with chardet detection for undeclared
// charsets) and gzip content-coding via klauspost/compress.
package bodyenc

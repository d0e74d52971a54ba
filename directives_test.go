package courier

import (
	"testing"

	"github.com/GriffinCanCode/courier/media"
	"github.com/stretchr/testify/assert"
)

func TestDirective(t *testing.T) {
	client := newTestClient(t, reply(jsonHead, "", nil))

	tests := []struct {
		name        string
		directive   string
		value       string
		contentType string
		expected    string
		headerName  string
		headerValue string
	}{
		{name: "sends alias", directive: "sendsJson", contentType: media.JSON},
		{name: "expects alias", directive: "expectsXml", expected: media.XML},
		{name: "sends and expects", directive: "sendsAndExpectsCsv", contentType: media.CSV, expected: media.CSV},
		{name: "case insensitive", directive: "SENDSFORM", contentType: media.Form},
		{name: "with prefix becomes header", directive: "withX_Api_Key", value: "k", headerName: "X-Api-Key", headerValue: "k"},
		{name: "unknown alias becomes header", directive: "sendsFoo", value: "bar", headerName: "Sendsfoo", headerValue: "bar"},
		{name: "plain header name", directive: "x_trace", value: "1", headerName: "X-Trace", headerValue: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := client.Get("https://api.example.test").Directive(tt.directive, tt.value)

			assert.NoError(t, req.Err())
			assert.Equal(t, tt.contentType, req.ContentType())
			assert.Equal(t, tt.expected, req.ExpectedType())
			if tt.headerName != "" {
				assert.Equal(t, tt.headerValue, req.Header(tt.headerName))
			}
		})
	}
}

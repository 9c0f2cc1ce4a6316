package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		bucket string
		key    string
	}{
		{
			name:   "virtual-hosted url with nested key",
			url:    "https://restauro-docs.s3.us-east-2.amazonaws.com/user-1/doc-2/file.pdf",
			bucket: "restauro-docs",
			key:    "user-1/doc-2/file.pdf",
		},
		{
			name:   "artifact key",
			url:    "https://restauro-docs.s3.us-east-2.amazonaws.com/user-1/doc-2/file.pdf.md",
			bucket: "restauro-docs",
			key:    "user-1/doc-2/file.pdf.md",
		},
		{
			name:   "no key",
			url:    "https://restauro-docs.s3.us-east-2.amazonaws.com",
			bucket: "restauro-docs",
			key:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key := ParseObjectURL(tt.url)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

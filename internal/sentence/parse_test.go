package sentence

import (
	"reflect"
	"testing"
)

func TestParseSentenceArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `["One.", "Two."]`,
			want:    []string{"One.", "Two."},
		},
		{
			name:    "markdown fenced",
			content: "```json\n[\"One.\", \"Two.\"]\n```",
			want:    []string{"One.", "Two."},
		},
		{
			name:    "surrounding prose",
			content: `Here are your sentences: ["One.", "Two."] Enjoy!`,
			want:    []string{"One.", "Two."},
		},
		{
			name:    "no array",
			content: "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "not a string array",
			content: `[1, 2, 3]`,
			wantErr: true,
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSentenceArray(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSentenceArray() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSentenceArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

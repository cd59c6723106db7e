package formatter

import "testing"

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "jsonl", want: KindJSONL},
		{input: "JSON", want: KindJSONL},
		{input: "ndjson", want: KindJSONL},
		{input: " csv ", want: KindCSV},
		{input: "yaml", want: KindYAML},
		{input: "yml", want: KindYAML},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

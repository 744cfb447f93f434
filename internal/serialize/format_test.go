package serialize

import "testing"

func TestOutputFormat_Validate(t *testing.T) {
	cases := []struct {
		name    string
		format  OutputFormat
		wantErr bool
	}{
		{"json is valid", FormatJSON, false},
		{"yaml is valid", FormatYAML, false},
		{"tfvars is not supported", OutputFormat("tfvars"), true},
		{"empty is invalid", OutputFormat(""), true},
		{"uppercase JSON is invalid", OutputFormat("JSON"), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.format.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

package validator

import "testing"

func TestEmployeeCodeRule(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain numeric code", "10234", true},
		{"alphanumeric with dash", "ENG-0042", true},
		{"single character is too short", "A", false},
		{"leading dash", "-ENG42", false},
		{"spaces are rejected", "ENG 42", false},
		{"over twenty characters", "ABCDEFGHIJKLMNOPQRSTU", false},
		{"empty", "", false},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidatorInstance.ValidateValue(testCase.value, "employee_code")
			if (err == nil) != testCase.valid {
				t.Errorf("employee_code(%q) valid = %v, want %v", testCase.value, err == nil, testCase.valid)
			}
		})
	}
}

func TestPersonNameRule(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple name", "Ada Lovelace", true},
		{"apostrophe and hyphen", "N'Golo Kanté-Smith", true},
		{"non latin letters", "李小龙", true},
		{"digits are rejected", "R2D2", false},
		{"empty", "", false},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidatorInstance.ValidateValue(testCase.value, "person_name")
			if (err == nil) != testCase.valid {
				t.Errorf("person_name(%q) valid = %v, want %v", testCase.value, err == nil, testCase.valid)
			}
		})
	}
}

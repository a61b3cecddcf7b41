package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Listen", flags.Listen, ":8080"},
		{"Language", flags.Language, "Turkish"},
		{"LLMProvider", flags.LLMProvider, "openai"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4.1"},
		{"OllamaURL", flags.OllamaURL, "http://localhost:11434"},
		{"OllamaModel", flags.OllamaModel, "llama3.1:8b"},
		{"Voice", flags.Voice, "tr-TR-Wavenet-D"},
		{"SpeakingRate", flags.SpeakingRate, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"ListModels", flags.ListModels},
		{"Export", flags.Export},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"OutputDir", flags.OutputDir},
		{"DBPath", flags.DBPath},
		{"CredentialsFile", flags.CredentialsFile},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestFlagsStructure(t *testing.T) {
	// Test that Flags struct has all expected fields
	flags := &Flags{}
	flagsType := reflect.TypeOf(*flags)

	expectedFields := []string{
		"CfgFile", "OutputDir", "DBPath", "Listen", "Language",
		"ListModels", "Export",
		"LLMProvider", "OpenAIModel", "OllamaURL", "OllamaModel",
		"Voice", "SpeakingRate", "Pitch", "VolumeGainDB", "CredentialsFile",
	}

	for _, fieldName := range expectedFields {
		t.Run("has_field_"+fieldName, func(t *testing.T) {
			if _, ok := flagsType.FieldByName(fieldName); !ok {
				t.Errorf("Flags struct missing field: %s", fieldName)
			}
		})
	}
}

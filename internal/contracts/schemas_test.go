package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromPath(t *testing.T) {
	assert.Equal(t, "LeadCreatedEvent/1.0.0", keyFromPath("schemas/events/lead-created/v1.json"))
	assert.Equal(t, "LeadRequest/1.0.0", keyFromPath("schemas/requests/lead/v1.json"))
	assert.Equal(t, "", keyFromPath("schemas/broken.json"))
}

func TestSchemasAreRegistered(t *testing.T) {
	require.Contains(t, compiledSchemas, "LeadRequest/1.0.0")
	require.Contains(t, compiledSchemas, "LeadCreatedEvent/1.0.0")
}

func TestValidateLeadRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"contact by email", `{"name":"Ana Souza","email":"ana@example.com","formType":"contact"}`, false},
		{"property by phone", `{"name":"Ana","phone":"+55 (41) 99999-0000","formType":"property","propertyCode":"AP01"}`, false},
		{"no contact channel", `{"name":"Ana","formType":"contact"}`, true},
		{"bad email", `{"name":"Ana","email":"not-an-email","formType":"contact"}`, true},
		{"unknown form type", `{"name":"Ana","email":"ana@example.com","formType":"newsletter"}`, true},
		{"name too short", `{"name":"A","email":"ana@example.com","formType":"contact"}`, true},
		{"not json", `{"name":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLeadRequest([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("NopeEvent", "1.0.0", []byte(`{}`))
	assert.ErrorContains(t, err, "not found")
}

package chat

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  ResponseKey
	}{
		{"I have a fever and need an appointment", KeyFever},
		{"My TEMPERATURE is high", KeyFever},
		{"मुझे बुखार है", KeyFever},
		{"ਮੈਨੂੰ ਬੁਖਾਰ ਹੈ", KeyFever},
		{"terrible headache", KeyHeadache},
		{"my head is spinning", KeyHeadache},
		{"सिरदर्द", KeyHeadache},
		{"ਸਿਰ ਦਰਦ ਹੋ ਰਿਹਾ", KeyHeadache},
		{"I need help with a cough", KeyCough},
		{"caught a cold", KeyCough},
		{"खांसी", KeyCough},
		{"ਖੰਘ", KeyCough},
		{"book a doctor please", KeyAppointment},
		{"डॉक्टर चाहिए", KeyAppointment},
		{"which medication should I take", KeyMedicine},
		{"दवा", KeyMedicine},
		{"ਦਵਾਈ", KeyMedicine},
		{"this is urgent", KeyEmergency},
		{"आपातकाल", KeyEmergency},
		{"pain in my knee", KeySymptoms},
		{"लक्षण", KeySymptoms},
		{"xyz123", KeyDefault},
		{"", KeyDefault},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestKeys(t *testing.T) {
	all := keys()
	assert.Len(t, all, 8)
	assert.Equal(t, KeyFever, all[0])
	assert.Equal(t, KeyDefault, all[len(all)-1])

	for _, k := range all {
		assert.Contains(t, fallbackResponses, k)
	}
}

// Any input maps to a known key, and prefixing a higher priority keyword wins
func TestProperty_ClassifyPriority(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("classification is total", prop.ForAll(
		func(input string) bool {
			key := Classify(input)
			_, ok := fallbackResponses[key]
			return ok
		},
		gen.AnyString(),
	))

	properties.Property("fever keyword always wins", prop.ForAll(
		func(input string) bool {
			return Classify("fever "+input) == KeyFever
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

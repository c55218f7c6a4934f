package chat

import "strings"

// ResponseKey identifies one of the canned assistant responses
type ResponseKey string

const (
	KeyFever       ResponseKey = "fever"
	KeyHeadache    ResponseKey = "headache"
	KeyCough       ResponseKey = "cough"
	KeyAppointment ResponseKey = "appointment"
	KeyMedicine    ResponseKey = "medicine"
	KeyEmergency   ResponseKey = "emergency"
	KeySymptoms    ResponseKey = "symptoms"
	KeyDefault     ResponseKey = "default"
)

type topic struct {
	key      ResponseKey
	keywords []string
}

// topics in priority order. Each carries English, Hindi and Punjabi keywords.
var topics = []topic{
	{KeyFever, []string{"fever", "temperature", "बुखार", "ਬੁਖਾਰ"}},
	{KeyHeadache, []string{"headache", "head", "सिरदर्द", "ਸਿਰ ਦਰਦ"}},
	{KeyCough, []string{"cough", "cold", "खांसी", "ਖੰਘ"}},
	{KeyAppointment, []string{"appointment", "doctor", "book", "डॉक्टर"}},
	{KeyMedicine, []string{"medicine", "medication", "दवा", "ਦਵਾਈ"}},
	{KeyEmergency, []string{"emergency", "urgent", "help", "आपातकाल"}},
	{KeySymptoms, []string{"symptom", "pain", "hurt", "लक्षण"}},
}

// Classify picks the response for a user message. Matching is a case-insensitive
// substring test and the first topic with a matching keyword wins.
func Classify(input string) ResponseKey {
	lower := strings.ToLower(input)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.key
			}
		}
	}
	return KeyDefault
}

// keys returns every response key, default last
func keys() []ResponseKey {
	keys := make([]ResponseKey, 0, len(topics)+1)
	for _, t := range topics {
		keys = append(keys, t.key)
	}
	return append(keys, KeyDefault)
}

package chat

// Translator resolves a localized string, returning fallback when it has none
type Translator interface {
	T(lang, key, fallback string) string
}

const greeting = "Hello! I'm Sahayak, your AI health assistant. How can I help you today?"

var fallbackResponses = map[ResponseKey]string{
	KeyFever:       "For fever management:\n\n🌡️ **Monitor Temperature**: Keep track every 2-3 hours\n💧 **Stay Hydrated**: Drink plenty of water and fluids\n💊 **Medication**: Paracetamol can help (follow dosage)\n🛏️ **Rest**: Get adequate sleep and rest\n⚠️ **See Doctor**: If fever >101°F for 3+ days or severe symptoms\n\nWould you like me to help you find nearby doctors?",
	KeyHeadache:    "For headache relief:\n\n🌙 **Rest Environment**: Quiet, dark room\n🧊 **Cold Compress**: Apply to forehead for 15-20 mins\n💧 **Hydration**: Dehydration often causes headaches\n💊 **Pain Relief**: Consider mild OTC medications\n🧘 **Relaxation**: Deep breathing or meditation\n⚠️ **Seek Help**: If severe, sudden, or with vision changes",
	KeyCough:       "For cough management:\n\n🍯 **Honey**: Natural cough suppressant (1-2 tsp)\n💨 **Steam**: Inhale steam from hot shower/bowl\n💧 **Fluids**: Warm liquids help soothe throat\n🚫 **Avoid Irritants**: Smoke, dust, strong odors\n😴 **Sleep Position**: Elevate head while sleeping\n⚠️ **Doctor Visit**: If persists >2 weeks or blood in cough",
	KeyAppointment: "📅 **Book Appointment Process**:\n\n1️⃣ Navigate to 'Appointments' section\n2️⃣ Choose your preferred doctor\n3️⃣ Select available date & time\n4️⃣ Confirm booking details\n\n🏥 **Available Options**:\n• Video consultations\n• In-person visits\n• Specialist referrals\n\nWould you like me to guide you to the appointments section?",
	KeyMedicine:    "💊 **Find Medicines**:\n\n🔍 **Search Process**:\n1️⃣ Use 'Find Medicines' feature\n2️⃣ Enter medicine name\n3️⃣ Check local pharmacy stock\n4️⃣ Get directions to nearest store\n\n⚠️ **Important Reminders**:\n• Always consult doctor before new medications\n• Check expiry dates\n• Follow prescribed dosages\n• Report side effects\n\nNeed help finding a specific medication?",
	KeyEmergency:   "🚨 **EMERGENCY SITUATIONS**:\n\nFor immediate medical emergencies:\n📞 **Call 108** (Emergency Services)\n🏥 **Go to nearest hospital**\n\n⚠️ **Emergency Signs**:\n• Chest pain/pressure\n• Difficulty breathing\n• Severe bleeding\n• Loss of consciousness\n• Severe allergic reactions\n\nThis chat is for guidance only - seek immediate help for emergencies!",
	KeySymptoms:    "🏥 **Symptom Assessment**:\n\nI can help you understand common symptoms and when to seek care:\n\n🔴 **Urgent Signs**: Chest pain, difficulty breathing, severe bleeding\n🟡 **Concerning**: High fever, persistent pain, unusual symptoms\n🟢 **Manageable**: Minor aches, mild cold symptoms\n\nPlease describe your symptoms in detail for better guidance.",
	KeyDefault:     "👋 I'm here to help with your health concerns!\n\n💬 **I can assist with**:\n• Symptom guidance\n• Appointment booking\n• Medicine information\n• General health advice\n• Emergency guidance\n\n📝 **Please tell me**:\n• Your specific symptoms\n• How long you've had them\n• Any other relevant details\n\nWhat health concern can I help you with today?",
}

func responseText(tr Translator, lang string, key ResponseKey) string {
	fallback, ok := fallbackResponses[key]
	if !ok {
		key, fallback = KeyDefault, fallbackResponses[KeyDefault]
	}
	if tr == nil {
		return fallback
	}
	return tr.T(lang, "sahayak.responses."+string(key), fallback)
}

func greetingText(tr Translator, lang string) string {
	if tr == nil {
		return greeting
	}
	return tr.T(lang, "sahayak.greeting", greeting)
}

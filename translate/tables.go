package translate

// Static compiled-in UI string tables. Keys are the English source strings;
// English itself needs no table. Coverage is intentionally partial — dynamic
// content (AI insight sentences, backend messages) goes through the remote
// fallback instead.
var staticTables = map[string]map[string]string{
	"hi": {
		"Dashboard":               "डैशबोर्ड",
		"Log Glucose":             "ग्लूकोज़ दर्ज करें",
		"Log Blood Pressure":      "रक्तचाप दर्ज करें",
		"Log Food":                "भोजन दर्ज करें",
		"Log Activity":            "गतिविधि दर्ज करें",
		"Log Water":               "पानी दर्ज करें",
		"Medications":             "दवाइयाँ",
		"Reminders":               "अनुस्मारक",
		"Care Plan":               "देखभाल योजना",
		"Emergency Contacts":      "आपातकालीन संपर्क",
		"Blood pressure is in the normal range.": "रक्तचाप सामान्य सीमा में है।",
		"Elevated blood pressure. Keep monitoring.": "रक्तचाप बढ़ा हुआ है। निगरानी जारी रखें।",
		"Hypertensive crisis. Seek immediate medical attention.": "उच्च रक्तचाप संकट। तुरंत चिकित्सा सहायता लें।",
		"Stay hydrated":           "पानी पीते रहें",
		"Take your medications":   "अपनी दवाइयाँ लें",
	},
	"kn": {
		"Dashboard":               "ಡ್ಯಾಶ್‌ಬೋರ್ಡ್",
		"Log Glucose":             "ಗ್ಲೂಕೋಸ್ ದಾಖಲಿಸಿ",
		"Log Blood Pressure":      "ರಕ್ತದೊತ್ತಡ ದಾಖಲಿಸಿ",
		"Log Food":                "ಆಹಾರ ದಾಖಲಿಸಿ",
		"Log Activity":            "ಚಟುವಟಿಕೆ ದಾಖಲಿಸಿ",
		"Log Water":               "ನೀರು ದಾಖಲಿಸಿ",
		"Medications":             "ಔಷಧಿಗಳು",
		"Reminders":               "ಜ್ಞಾಪನೆಗಳು",
		"Care Plan":               "ಆರೈಕೆ ಯೋಜನೆ",
		"Emergency Contacts":      "ತುರ್ತು ಸಂಪರ್ಕಗಳು",
		"Blood pressure is in the normal range.": "ರಕ್ತದೊತ್ತಡ ಸಾಮಾನ್ಯ ಮಿತಿಯಲ್ಲಿದೆ.",
		"Stay hydrated":           "ನೀರು ಕುಡಿಯುತ್ತಿರಿ",
		"Take your medications":   "ನಿಮ್ಮ ಔಷಧಿಗಳನ್ನು ತೆಗೆದುಕೊಳ್ಳಿ",
	},
}

// SupportedLanguages returns the language codes with a static table,
// plus English.
func SupportedLanguages() []string {
	langs := []string{"en"}
	for code := range staticTables {
		langs = append(langs, code)
	}
	return langs
}

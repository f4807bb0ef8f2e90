package careplan

// DailyReminder is one of the built-in diabetes care reminders shown to
// every patient alongside their custom reminders.
type DailyReminder struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Body     string `json:"description"`
	Priority string `json:"priority"`
}

// RemindersDisclaimer accompanies every reminders response.
const RemindersDisclaimer = "These reminders support your care plan but do not replace medical advice."

// DefaultReminders returns the built-in daily care reminders.
func DefaultReminders() []DailyReminder {
	return []DailyReminder{
		{
			Type:     "foot_care",
			Title:    "Daily Foot Check",
			Body:     "Check your feet for cuts, blisters, or sores using a mirror. This helps prevent infections.",
			Priority: "high",
		},
		{
			Type:     "id_band",
			Title:    "Diabetes ID Band",
			Body:     "Remember to wear your diabetes identification band or carry an ID card.",
			Priority: "medium",
		},
		{
			Type:     "hydration",
			Title:    "Stay Hydrated",
			Body:     "Drink 2.5-3 liters of water daily. Proper hydration helps manage blood sugar.",
			Priority: "medium",
		},
		{
			Type:     "lifestyle",
			Title:    "Healthy Lifestyle",
			Body:     "Avoid smoking and limit alcohol consumption. These affect blood sugar control.",
			Priority: "high",
		},
	}
}

// ChecklistItem is one entry in the travel safety checklist.
type ChecklistItem struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// TravelDisclaimer accompanies the travel checklist response.
const TravelDisclaimer = "Please have your doctor sign the letter before travel."

// TravelChecklist returns the travel safety checklist for diabetic patients.
func TravelChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Item: "Medications in hand luggage", Reason: "Never put insulin/medications in checked baggage - temperature changes can damage them"},
		{Item: "Diabetes ID band/card", Reason: "Helps medical staff identify your condition in emergencies"},
		{Item: "Emergency contact info", Reason: "Keep doctor's contact and emergency numbers accessible"},
		{Item: "Glucose tablets/snacks", Reason: "For managing low blood sugar during travel delays"},
		{Item: "Blood glucose meter & supplies", Reason: "Monitor your levels during travel"},
		{Item: "Doctor's letter", Reason: "Explains your medications and supplies for airport security"},
		{Item: "Extra medication supply", Reason: "Carry at least double your expected needs in case of delays"},
		{Item: "Medical insurance documents", Reason: "Ensure coverage for diabetes-related emergencies abroad"},
	}
}

// GPLetterTemplate is a fill-in letter patients can take to their doctor
// before traveling with medication and supplies.
const GPLetterTemplate = `Dear Medical Professional,

This letter confirms that [Patient Name] has Type 2 Diabetes Mellitus and requires the following medications and supplies:

Medications:
- [List medications with dosages]

Medical Supplies:
- Blood glucose monitoring device
- Test strips
- Lancets
- [Other supplies as needed]

These items are essential for the management of their diabetes during travel.

Please contact me if you require any additional information.

Yours sincerely,
[Doctor's Name]
[Doctor's Contact]
`

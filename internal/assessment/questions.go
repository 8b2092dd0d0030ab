package assessment

import "bhai/internal/models"

// Option is one selectable answer with its integer code.
type Option struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// Question is static configuration, fixed at build time.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

var frequency2Weeks = []Option{
	{0, "Not at all"},
	{1, "Several days"},
	{2, "More than half the days"},
	{3, "Nearly every day"},
}

var habitFrequency = []Option{
	{0, "Never"},
	{1, "Sometimes"},
	{2, "Often"},
	{3, "Very often"},
}

var mentalQuestions = []Question{
	{ID: "q1", Text: "Over the past 2 weeks, how often have you felt little interest or pleasure in doing things?", Options: frequency2Weeks},
	{ID: "q2", Text: "Over the past 2 weeks, how often have you felt down, depressed, or hopeless?", Options: frequency2Weeks},
	{ID: "q3", Text: "Over the past 2 weeks, how often have you had trouble falling or staying asleep, or sleeping too much?", Options: frequency2Weeks},
	{ID: "q4", Text: "Over the past 2 weeks, how often have you felt tired or had little energy?", Options: frequency2Weeks},
	{ID: "q5", Text: "Over the past 2 weeks, how often have you had poor appetite or overeating?", Options: frequency2Weeks},
	{ID: "q6", Text: "Over the past 2 weeks, how often have you felt bad about yourself — or that you are a failure or have let yourself or your family down?", Options: frequency2Weeks},
	{ID: "q7", Text: "Over the past 2 weeks, how often have you had trouble concentrating on things, such as reading or watching TV?", Options: frequency2Weeks},
	{ID: "q8", Text: "Over the past 2 weeks, how often have you felt nervous, anxious, or on edge?", Options: frequency2Weeks},
	{ID: "q9", Text: "Over the past 2 weeks, how often have you been unable to stop or control worrying?", Options: frequency2Weeks},
	{ID: "q10", Text: "Over the past 2 weeks, how often have you had thoughts that you would be better off dead or of hurting yourself in some way?", Options: frequency2Weeks},
	{ID: "q11", Text: "How difficult have these problems made it for you to do your work, take care of things at home, or get along with other people?", Options: []Option{
		{0, "Not difficult at all"},
		{1, "Somewhat difficult"},
		{2, "Very difficult"},
		{3, "Extremely difficult"},
	}},
	{ID: "q12", Text: "Do you have anyone you can talk to about your problems or concerns?", Options: []Option{
		{0, "Yes"},
		{1, "No"},
	}},
	{ID: "q13", Text: "Have you previously been diagnosed with a mental health condition?", Options: []Option{
		{0, "Yes"},
		{1, "No"},
	}},
	{ID: "q14", Text: "Have you noticed any triggers that worsen your mental health?", Options: frequency2Weeks},
	{ID: "q15", Text: "How often do you engage in activities that you enjoy or find fulfilling?", Options: []Option{
		{0, "Daily"},
		{1, "Several times a week"},
		{2, "Once a week"},
		{3, "Rarely"},
	}},
}

var behavioralQuestions = []Question{
	{ID: "b1", Text: "How often do you engage in physical activity or exercise?", Options: []Option{
		{0, "Daily"},
		{1, "3-4 times a week"},
		{2, "Once a week"},
		{3, "Rarely or never"},
	}},
	{ID: "b2", Text: "How would you rate your overall sleep quality?", Options: []Option{
		{0, "Very good"},
		{1, "Good"},
		{2, "Fair"},
		{3, "Poor"},
	}},
	{ID: "b3", Text: "How often do you consume alcohol?", Options: []Option{
		{0, "Never"},
		{1, "Occasionally"},
		{2, "Weekly"},
		{3, "Daily"},
	}},
	{ID: "b4", Text: "Do you currently use tobacco products?", Options: []Option{
		{0, "No"},
		{1, "Occasionally"},
		{2, "Regularly"},
		{3, "Heavily"},
	}},
	{ID: "b5", Text: "How often do you eat a balanced diet with fruits and vegetables?", Options: habitFrequency},
	{ID: "b6", Text: "How many hours per day do you typically spend on screens (TV, computer, phone)?", Options: []Option{
		{0, "Less than 2 hours"},
		{1, "2-4 hours"},
		{2, "4-6 hours"},
		{3, "More than 6 hours"},
	}},
	{ID: "b7", Text: "How often do you engage in social activities with friends or family?", Options: habitFrequency},
	{ID: "b8", Text: "How often do you practice relaxation techniques or mindfulness?", Options: habitFrequency},
	{ID: "b9", Text: "How often do you feel that everyday stressors overwhelm you?", Options: habitFrequency},
	{ID: "b10", Text: "How would you rate your work-life balance?", Options: habitFrequency},
	{ID: "b11", Text: "Have you experienced any major life changes in the past year?", Options: []Option{
		{0, "None"},
		{1, "One minor change"},
		{2, "One major change"},
		{3, "Multiple major changes"},
	}},
	{ID: "b12", Text: "How often do you find yourself procrastinating on important tasks?", Options: habitFrequency},
	{ID: "b13", Text: "How often do you experience physical symptoms like headaches, stomachaches, or muscle tension?", Options: habitFrequency},
	{ID: "b14", Text: "How often do you feel satisfied with your daily accomplishments?", Options: habitFrequency},
	{ID: "b15", Text: "How often do you engage in activities that give you a sense of purpose?", Options: habitFrequency},
}

// Questions returns the fixed bank for an assessment type, in presentation
// order. The returned slice must not be mutated.
func Questions(t models.AssessmentType) []Question {
	switch t {
	case models.AssessmentMental:
		return mentalQuestions
	case models.AssessmentBehavioral:
		return behavioralQuestions
	default:
		return nil
	}
}

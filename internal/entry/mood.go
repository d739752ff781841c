package entry

// Mood rating bounds.
const (
	MinMood     = 1
	MaxMood     = 5
	NeutralMood = 3
)

// MoodOption is one row of the fixed mood table.
type MoodOption struct {
	Value int
	Icon  string
	Label string
}

var moodTable = [...]MoodOption{
	{Value: 1, Icon: "cloud.rain", Label: "Very Bad"},
	{Value: 2, Icon: "cloud", Label: "Bad"},
	{Value: 3, Icon: "cloud.sun", Label: "Neutral"},
	{Value: 4, Icon: "sun.max", Label: "Good"},
	{Value: 5, Icon: "sparkles", Label: "Excellent"},
}

// Moods returns the mood table in ascending order.
func Moods() []MoodOption {
	out := make([]MoodOption, len(moodTable))
	copy(out, moodTable[:])
	return out
}

// LookupMood returns the table row for mood. Unknown values fall back to neutral.
func LookupMood(mood int) MoodOption {
	if mood < MinMood || mood > MaxMood {
		return moodTable[NeutralMood-1]
	}
	return moodTable[mood-1]
}

// MoodIcon derives the display icon for a mood rating.
func MoodIcon(mood int) string {
	return LookupMood(mood).Icon
}

// MoodLabel derives the human label for a mood rating.
func MoodLabel(mood int) string {
	return LookupMood(mood).Label
}

// MoodIcon returns the icon for the entry's mood.
func (e *Entry) MoodIcon() string {
	return MoodIcon(e.Mood)
}

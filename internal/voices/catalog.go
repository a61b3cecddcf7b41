package voices

// Voice describes one Google Cloud TTS voice offered for corpus synthesis.
type Voice struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Type   string `json:"type"`
}

// DefaultVoice is used when a synthesis request does not pick one.
const DefaultVoice = "tr-TR-Wavenet-D"

// Turkish is the curated Turkish voice catalog. Wavenet voices sound better;
// Standard voices are cheaper.
var Turkish = []Voice{
	{Name: "tr-TR-Standard-A", Gender: "female", Type: "standard"},
	{Name: "tr-TR-Standard-B", Gender: "male", Type: "standard"},
	{Name: "tr-TR-Standard-C", Gender: "female", Type: "standard"},
	{Name: "tr-TR-Standard-D", Gender: "female", Type: "standard"},
	{Name: "tr-TR-Standard-E", Gender: "male", Type: "standard"},
	{Name: "tr-TR-Wavenet-A", Gender: "female", Type: "wavenet"},
	{Name: "tr-TR-Wavenet-B", Gender: "male", Type: "wavenet"},
	{Name: "tr-TR-Wavenet-C", Gender: "female", Type: "wavenet"},
	{Name: "tr-TR-Wavenet-D", Gender: "female", Type: "wavenet"},
	{Name: "tr-TR-Wavenet-E", Gender: "male", Type: "wavenet"},
}

// IsKnown reports whether the name is in the catalog.
func IsKnown(name string) bool {
	for _, v := range Turkish {
		if v.Name == name {
			return true
		}
	}
	return false
}

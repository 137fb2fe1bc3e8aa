package medlai

// Build metadata. GitCommit and BuildDate are set with ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/medlai.GitCommit=abc1234"
const (
	Name        = "medlai"
	Description = "Discharge summary structuring and patient-language translation"
	Version     = "0.1.0"
)

var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns Version with the short commit appended when known.
func FullVersion() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return Version
	}
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + "+" + short
}

// UserAgent is sent by the HTTP providers.
func UserAgent() string {
	return Name + "/" + Version
}

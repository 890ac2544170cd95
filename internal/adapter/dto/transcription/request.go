package transcription

// TranscribeRequest holds the multipart form fields sent next to the audio
// file. Empty fields fall back to the server defaults.
type TranscribeRequest struct {
	Model    string `form:"model"`
	Language string `form:"language" validate:"omitempty,max=20"`
	Format   string `form:"format" validate:"omitempty,oneof=text json verbose_json srt vtt"`
	Prompt   string `form:"prompt" validate:"omitempty,max=2000"`
	Archive  bool   `form:"archive"`
}

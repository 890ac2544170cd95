package transcription

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// SuggestedModel is offered when a model cannot produce the requested format.
const SuggestedModel = "whisper-1"

// AssemblyAIModel selects the AssemblyAI account default speech model.
const AssemblyAIModel = "assemblyai"

var supportedExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".webm"}

var supportedMIMETypes = []string{
	"audio/mpeg",
	"audio/mp3",
	"audio/wav",
	"audio/x-wav",
	"audio/wave",
	"audio/vnd.wave",
	"audio/mp4",
	"audio/x-m4a",
	"video/mp4",
	"audio/ogg",
	"application/ogg",
	"audio/webm",
	"video/webm",
}

// ModelFamily groups transcription models by the response formats they accept
type ModelFamily int

const (
	// FamilyUnknown is any model not matched by a known prefix
	FamilyUnknown ModelFamily = iota
	// FamilyCompact models only return plain text or a JSON envelope
	FamilyCompact
	// FamilyFull models also return segments and subtitles
	FamilyFull
)

var familyPrefixes = []struct {
	prefix string
	family ModelFamily
}{
	{"gpt-4o-mini-transcribe", FamilyCompact},
	{"gpt-4o-transcribe", FamilyCompact},
	{"whisper", FamilyFull},
	{AssemblyAIModel, FamilyFull},
}

// FamilyOf classifies a model name, case-insensitively, by prefix.
func FamilyOf(model string) ModelFamily {
	m := strings.ToLower(strings.TrimSpace(model))
	for _, fp := range familyPrefixes {
		if strings.HasPrefix(m, fp.prefix) {
			return fp.family
		}
	}
	return FamilyUnknown
}

// Formats lists the response formats the family accepts
func (f ModelFamily) Formats() []string {
	if f == FamilyFull {
		return []string{"text", "json", "verbose_json", "srt", "vtt"}
	}
	return []string{"json", "text"}
}

func (f ModelFamily) String() string {
	switch f {
	case FamilyCompact:
		return "compact"
	case FamilyFull:
		return "full"
	default:
		return "unknown"
	}
}

// SupportedExtensions returns the accepted audio file extensions
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// IsAudioPath reports whether the file extension is an accepted audio extension.
func IsAudioPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range supportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ValidateAudioFile checks that path exists and looks like audio. The
// extension is checked first, then the MIME type guessed from the
// extension, then the MIME type sniffed from the file content.
func ValidateAudioFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return errors.ErrNotFound(path).
			WithHint("check the path of the audio file")
	}

	if IsAudioPath(path) {
		return nil
	}

	detected := ""
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		detected = byExt
		if isSupportedMIME(byExt) {
			return nil
		}
	}

	if mt, err := mimetype.DetectFile(path); err == nil {
		for _, m := range supportedMIMETypes {
			if mt.Is(m) {
				return nil
			}
		}
		if detected == "" {
			detected = mt.String()
		}
	}

	return errors.ErrUnsupportedFormat(detected, path).
		WithHint(fmt.Sprintf("convert the file to one of %s", strings.Join(SupportedExtensions(), ", ")))
}

func isSupportedMIME(value string) bool {
	base, _, err := mime.ParseMediaType(value)
	if err != nil {
		base = value
	}
	for _, m := range supportedMIMETypes {
		if strings.EqualFold(base, m) {
			return true
		}
	}
	return false
}

// ValidateFormatForModel checks that model can produce format.
func ValidateFormatForModel(model, format string) error {
	if !config.IsResponseFormat(format) {
		return errors.ErrInvalidArgument(fmt.Sprintf("unknown response format %q", format)).
			WithHint(fmt.Sprintf("use one of %v", config.ResponseFormats))
	}

	allowed := FamilyOf(model).Formats()
	for _, f := range allowed {
		if f == format {
			return nil
		}
	}

	return errors.ErrIncompatibleFormat(model, format, SuggestedModel, allowed)
}

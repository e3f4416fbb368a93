package audio

import (
	"strings"
	"testing"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

func TestDetectAudioFormat(t *testing.T) {
	cases := []struct {
		mime string
		want entities.AudioFormat
	}{
		{"audio/webm", entities.AudioFormatWebM},
		{"audio/webm;codecs=opus", entities.AudioFormatWebM},
		{"audio/mpeg", entities.AudioFormatMP3},
		{"audio/mp3", entities.AudioFormatMP3},
		{"audio/wav", entities.AudioFormatWAV},
		{"AUDIO/OGG", entities.AudioFormatOGG},
		{"video/mp4", entities.AudioFormatUnsupported},
		{"", entities.AudioFormatUnsupported},
		{"garbage", entities.AudioFormatUnsupported},
	}
	for _, tc := range cases {
		if got := DetectAudioFormat(tc.mime); got != tc.want {
			t.Errorf("DetectAudioFormat(%q) = %s, want %s", tc.mime, got, tc.want)
		}
	}
}

func TestValidateAudioFormat(t *testing.T) {
	if res := ValidateAudioFormat(entities.AudioFormatWebM, "audio/webm"); !res.Valid {
		t.Fatalf("webm must pass: %s", res.Reason)
	}
	res := ValidateAudioFormat(entities.AudioFormatUnsupported, "video/mp4")
	if res.Valid {
		t.Fatalf("unsupported format must fail")
	}
	if !strings.Contains(res.Reason, "unsupported audio format") {
		t.Fatalf("reason must name the failure, got %q", res.Reason)
	}
}

func TestValidateAudioSize(t *testing.T) {
	limits := Limits{MaxBytes: 1024, MaxDurationSeconds: 120}
	if res := ValidateAudioSize(512, limits); !res.Valid {
		t.Fatalf("size under limit must pass: %s", res.Reason)
	}
	if res := ValidateAudioSize(2048, limits); res.Valid || !strings.Contains(res.Reason, "size limit") {
		t.Fatalf("oversized audio must fail with a size reason, got %+v", res)
	}
	if res := ValidateAudioSize(0, limits); res.Valid {
		t.Fatalf("empty audio must fail")
	}
}

func TestValidateAudioDuration(t *testing.T) {
	limits := Limits{MaxBytes: 1024, MaxDurationSeconds: 120}
	if res := ValidateAudioDuration(30, limits); !res.Valid {
		t.Fatalf("duration under limit must pass: %s", res.Reason)
	}
	if res := ValidateAudioDuration(121, limits); res.Valid || !strings.Contains(res.Reason, "duration limit") {
		t.Fatalf("overlong audio must fail with a duration reason, got %+v", res)
	}
	if res := ValidateAudioDuration(-1, limits); res.Valid {
		t.Fatalf("negative duration must fail")
	}
}

package submit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
)

// fakeVerifier is a canned captcha oracle for tests.
type fakeVerifier struct {
	ok     bool
	err    error
	called bool
}

func (f *fakeVerifier) Verify(_ context.Context, _, _ string) (bool, error) {
	f.called = true
	return f.ok, f.err
}

func TestValidate_MinimalValid(t *testing.T) {
	rt := config.Runtime{RequireModeration: false}

	e, rejected := validate(context.Background(), submission{
		name:    "alice",
		message: "hello there",
	}, rt, &fakeVerifier{})

	if rejected != nil {
		t.Fatalf("unexpected rejection: %v", rejected)
	}

	if e.Name != "alice" || e.Message != "hello there" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if e.Site != nil || e.Email != nil {
		t.Fatalf("blank optional fields must stay nil, got %+v", e)
	}

	if !e.Approved {
		t.Fatal("entry must be approved when moderation is off")
	}
}

func TestValidate_ModerationFlagControlsApproved(t *testing.T) {
	e, rejected := validate(context.Background(), submission{
		name:    "bob",
		message: "hi",
	}, config.Runtime{RequireModeration: true}, &fakeVerifier{})

	if rejected != nil {
		t.Fatalf("unexpected rejection: %v", rejected)
	}

	if e.Approved {
		t.Fatal("entry must be pending when moderation is on")
	}
}

func TestValidate_Rejections(t *testing.T) {
	rt := config.Runtime{}

	cases := []struct {
		name   string
		in     submission
		reason string
	}{
		{
			"missing name",
			submission{message: "hi"},
			"name is required",
		},
		{
			"whitespace name",
			submission{name: "   ", message: "hi"},
			"name is required",
		},
		{
			"missing message",
			submission{name: "alice"},
			"message is required",
		},
		{
			"tags-only message",
			submission{name: "alice", message: "<b></b>"},
			"message is required",
		},
		{
			"name too long",
			submission{name: strings.Repeat("a", 101), message: "hi"},
			"name must be at most 100 characters",
		},
		{
			"message too long",
			submission{name: "alice", message: strings.Repeat("a", 2001)},
			"message must be at most 2000 characters",
		},
		{
			"site too long",
			submission{name: "alice", message: "hi", site: "https://" + strings.Repeat("a", 250) + ".com"},
			"site must be at most 255 characters",
		},
		{
			"email too long",
			submission{name: "alice", message: "hi", email: strings.Repeat("a", 250) + "@example.com"},
			"email must be at most 255 characters",
		},
		{
			"relative site",
			submission{name: "alice", message: "hi", site: "/just/a/path"},
			"site must be an absolute http or https URL",
		},
		{
			"schemeless site",
			submission{name: "alice", message: "hi", site: "example.com"},
			"site must be an absolute http or https URL",
		},
		{
			"javascript site",
			submission{name: "alice", message: "hi", site: "javascript:alert(1)"},
			"site must be an absolute http or https URL",
		},
		{
			"ftp site",
			submission{name: "alice", message: "hi", site: "ftp://example.com"},
			"site must be an absolute http or https URL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, rejected := validate(context.Background(), tc.in, rt, &fakeVerifier{})
			if rejected == nil {
				t.Fatalf("expected rejection, got entry %+v", e)
			}

			if rejected.Reason != tc.reason {
				t.Fatalf("reason = %q, want %q", rejected.Reason, tc.reason)
			}
		})
	}
}

func TestValidate_AcceptsHTTPAndHTTPS(t *testing.T) {
	for _, site := range []string{"http://example.com", "https://example.com/page?x=1"} {
		e, rejected := validate(context.Background(), submission{
			name:    "alice",
			message: "hi",
			site:    site,
		}, config.Runtime{}, &fakeVerifier{})

		if rejected != nil {
			t.Fatalf("site %q rejected: %v", site, rejected)
		}

		if e.Site == nil || *e.Site != site {
			t.Fatalf("site %q not preserved: %+v", site, e)
		}
	}
}

func TestValidate_StripsHTML(t *testing.T) {
	e, rejected := validate(context.Background(), submission{
		name:    "<script>alert(1)</script>eve",
		message: "hello <b>world</b>",
	}, config.Runtime{}, &fakeVerifier{})

	if rejected != nil {
		t.Fatalf("unexpected rejection: %v", rejected)
	}

	if e.Name != "eve" {
		t.Fatalf("name = %q, want %q", e.Name, "eve")
	}

	if e.Message != "hello world" {
		t.Fatalf("message = %q, want %q", e.Message, "hello world")
	}
}

func TestValidate_PlainTextAngleBracketsSurvive(t *testing.T) {
	e, rejected := validate(context.Background(), submission{
		name:    "alice",
		message: "1 < 2 && 3 > 2",
	}, config.Runtime{}, &fakeVerifier{})

	if rejected != nil {
		t.Fatalf("unexpected rejection: %v", rejected)
	}

	if e.Message != "1 < 2 && 3 > 2" {
		t.Fatalf("message = %q, plain text must survive stripping", e.Message)
	}
}

func TestValidate_LengthCheckedAfterStripping(t *testing.T) {
	// raw input exceeds the ceiling but the stripped text does not
	in := submission{
		name:    "alice",
		message: "<div>" + strings.Repeat("a", 1999) + "</div>" + "<p>x</p>",
	}

	e, rejected := validate(context.Background(), in, config.Runtime{}, &fakeVerifier{})
	if rejected != nil {
		t.Fatalf("unexpected rejection: %v", rejected)
	}

	if len(e.Message) != 2000 {
		t.Fatalf("stripped message length = %d, want 2000", len(e.Message))
	}
}

func TestValidate_CaptchaDisabled_SkipsOracle(t *testing.T) {
	v := &fakeVerifier{ok: false, err: errors.New("oracle must not be called")}

	_, rejected := validate(context.Background(), submission{
		name:    "alice",
		message: "hi",
	}, config.Runtime{TurnstileEnabled: false}, v)

	if rejected != nil {
		t.Fatalf("unexpected rejection: %v", rejected)
	}

	if v.called {
		t.Fatal("oracle consulted although captcha is disabled")
	}
}

func TestValidate_Captcha(t *testing.T) {
	rt := config.Runtime{TurnstileEnabled: true}

	cases := []struct {
		name     string
		token    string
		verifier *fakeVerifier
		reason   string
	}{
		{"missing token", "", &fakeVerifier{ok: true}, "captcha token is required"},
		{"failed verification", "tok", &fakeVerifier{ok: false}, "captcha verification failed"},
		{"oracle error fails closed", "tok", &fakeVerifier{ok: true, err: errors.New("timeout")}, "captcha verification failed"},
		{"passes", "tok", &fakeVerifier{ok: true}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, rejected := validate(context.Background(), submission{
				name:         "alice",
				message:      "hi",
				captchaToken: tc.token,
			}, rt, tc.verifier)

			if tc.reason == "" {
				if rejected != nil {
					t.Fatalf("unexpected rejection: %v", rejected)
				}

				return
			}

			if rejected == nil || rejected.Reason != tc.reason {
				t.Fatalf("rejection = %v, want reason %q", rejected, tc.reason)
			}
		})
	}
}

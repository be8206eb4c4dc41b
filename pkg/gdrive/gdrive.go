// Package gdrive uploads lesson plans to the teacher's Google Drive. Each
// authorization code is exchanged for a token that serves exactly one
// upload; tokens are never stored.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when no OAuth client is configured.
var ErrNotConfigured = errors.New("google drive not configured")

const MarkdownType = "text/markdown"

type Uploader interface {
	AuthURL() (string, error)
	Upload(ctx context.Context, code, title, content string) (fileID string, err error)
}

var _ Uploader = (*Drive)(nil)

type Drive struct {
	cfg  *oauth2.Config
	opts []option.ClientOption
}

func New(clientID, clientSecret, redirectURL string, opts ...option.ClientOption) *Drive {
	return &Drive{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{drive.DriveFileScope},
		},
		opts: opts,
	}
}

// AuthURL is the consent page URL. Offline access and a forced consent
// prompt match what the callback page expects.
func (d *Drive) AuthURL() (string, error) {
	if d.cfg.ClientID == "" {
		return "", ErrNotConfigured
	}
	return d.cfg.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Upload exchanges code and stores content as "<title>.md".
func (d *Drive) Upload(ctx context.Context, code, title, content string) (string, error) {
	if d.cfg.ClientID == "" {
		return "", ErrNotConfigured
	}
	tok, err := d.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	opts := append([]option.ClientOption{option.WithTokenSource(d.cfg.TokenSource(ctx, tok))}, d.opts...)
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("drive service: %w", err)
	}

	f, err := srv.Files.Create(&drive.File{Name: title + ".md", MimeType: MarkdownType}).
		Media(strings.NewReader(content), googleapi.ContentType(MarkdownType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}
	return f.Id, nil
}

var callbackPage = template.Must(template.New("callback").Parse(`<html>
  <body>
    <script>
      if (window.opener) {
        window.opener.postMessage({ type: 'GOOGLE_AUTH_SUCCESS', code: {{.}} }, '*');
        window.close();
      }
    </script>
    <p>Autenticação concluída. Pode fechar esta janela.</p>
  </body>
</html>
`))

// WriteCallbackPage renders the popup page that hands code back to the
// opener window. The code is escaped for the script context.
func WriteCallbackPage(w io.Writer, code string) error {
	return callbackPage.Execute(w, code)
}

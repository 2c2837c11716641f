package pressmail

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"signalscout-engine/internal/domain"
	"signalscout-engine/internal/extract"
	"signalscout-engine/internal/sources/types"
	"signalscout-engine/internal/sources/util"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/google/uuid"
)

const pressConfidence = 0.65

// Config points the adapter at a mailbox that receives press / funding
// newsletters.
type Config struct {
	Addr     string // host:port, e.g. imap.gmail.com:993
	Username string
	Password string
	Mailbox  string // defaults to INBOX
	MaxMsgs  int
}

type Adapter struct {
	cfg Config
}

func New(cfg Config) *Adapter {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.MaxMsgs <= 0 {
		cfg.MaxMsgs = 30
	}
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return "pressmail" }

// FetchSignals reads recent newsletter messages and turns headline-shaped
// lines into press signals. Any IMAP failure costs only this source.
func (a *Adapter) FetchSignals(ctx context.Context, wanted []domain.SignalType) types.FetchResult {
	res := types.FetchResult{Source: a.Name()}

	if a.cfg.Addr == "" || a.cfg.Username == "" || a.cfg.Password == "" {
		return res
	}

	msgs, err := a.fetchRecent(ctx)
	if err != nil {
		res.Errs = append(res.Errs, fmt.Sprintf("pressmail: %v", err))
		return res
	}

	for _, m := range msgs {
		res.Signals = append(res.Signals, classifyMessage(m, wanted)...)
	}
	return res
}

type message struct {
	Subject string
	Date    time.Time
	Body    string
}

func (a *Adapter) fetchRecent(ctx context.Context) ([]message, error) {
	c, err := imapclient.DialTLS(a.cfg.Addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = c.Close() }()

	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(a.cfg.Username, a.cfg.Password).Wait(); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer func() { _ = c.Logout().Wait() }()

	if _, err := c.Select(a.cfg.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, fmt.Errorf("select %s: %w", a.cfg.Mailbox, err)
	}

	criteria := &imap.SearchCriteria{Since: time.Now().AddDate(0, 0, -7)}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	// newest first
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > a.cfg.MaxMsgs {
		uids = uids[:a.cfg.MaxMsgs]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	var out []message
	for {
		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("fetch collect: %w", err)
		}

		var m message
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
		}
		if raw := buf.FindBodySection(bodyAll); raw != nil {
			m.Body = bodyText(raw)
		}
		out = append(out, m)
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch close: %w", err)
	}
	return out, nil
}

func bodyText(raw []byte) string {
	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		return string(raw)
	}
	b, err := io.ReadAll(io.LimitReader(msg.Body, 256<<10))
	if err != nil {
		return ""
	}
	return string(b)
}

// classifyMessage walks the subject plus body lines looking for
// headline-shaped sentences that classify as a wanted type and name a
// company.
func classifyMessage(m message, wanted []domain.SignalType) []domain.RawSignal {
	now := time.Now().UTC()
	lines := append([]string{m.Subject}, strings.Split(m.Body, "\n")...)

	var published *time.Time
	if !m.Date.IsZero() {
		d := m.Date.UTC()
		published = &d
	}

	seen := map[string]bool{}
	var out []domain.RawSignal
	for _, line := range lines {
		line = util.CleanText(line)
		if len(line) < 20 || len(line) > 300 {
			continue
		}

		for _, typ := range wanted {
			if !extract.Matches(line, typ) {
				continue
			}
			company := extract.CompanyName(line)
			if company == "" {
				continue
			}
			key := strings.ToLower(company) + "|" + string(typ) + "|" + strings.ToLower(line)
			if seen[key] {
				continue
			}
			seen[key] = true

			out = append(out, domain.RawSignal{
				ID:           uuid.NewString(),
				Type:         typ,
				Source:       domain.SourcePress,
				CompanyName:  company,
				Headline:     line,
				Snippet:      line,
				Entities:     extract.RegexExtractor{}.Extract(line),
				PublishedAt:  published,
				DiscoveredAt: now,
				Confidence:   pressConfidence,
			})
		}
	}
	return out
}

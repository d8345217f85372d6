package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/identity"
	"github.com/dmitrijs2005/nutritrack/internal/ledger"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/recognition"
	"github.com/dmitrijs2005/nutritrack/internal/session"
)

// App wires a session to terminal input and output.
type App struct {
	sess       *session.Session
	verifier   *identity.Verifier
	classifier recognition.Classifier

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	loc         *time.Location
	target      int
	log         logging.Logger
}

// Option configures an App.
type Option func(*App)

// WithVerifier enables logging in with a JWT.
func WithVerifier(v *identity.Verifier) Option {
	return func(a *App) { a.verifier = v }
}

// WithClassifier enables the recognize command.
func WithClassifier(c recognition.Classifier) Option {
	return func(a *App) { a.classifier = c }
}

// WithInteractive shows prompts and hides typed secrets.
func WithInteractive(on bool) Option {
	return func(a *App) { a.interactive = on }
}

// WithLocation sets the zone used to print timestamps.
func WithLocation(loc *time.Location) Option {
	return func(a *App) { a.loc = loc }
}

// WithDailyTarget sets the calorie goal used by summary.
func WithDailyTarget(kcal int) Option {
	return func(a *App) { a.target = kcal }
}

// WithLogger sets where command failures are logged.
func WithLogger(log logging.Logger) Option {
	return func(a *App) { a.log = log }
}

// NewApp returns a shell reading commands from in and writing to out.
func NewApp(sess *session.Session, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		sess:   sess,
		reader: bufio.NewReader(in),
		out:    out,
		loc:    time.Local,
		target: ledger.DefaultDailyTarget,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the REPL and returns when input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	var prompt func() string
	if a.interactive {
		prompt = a.status
		fmt.Fprintln(a.out, "NutriTrack. Type help for commands.")
	}
	runREPL(ctx, a, prompt, a.reader, a.out)
}

func (a *App) status() string {
	if !a.sess.Active() {
		return "(logged out)"
	}
	return a.sess.UserID()
}

func (a *App) isLoggedIn() bool {
	return a.sess.Active()
}

// prompts is where field prompts go: hidden when input is scripted.
func (a *App) prompts() io.Writer {
	if a.interactive {
		return a.out
	}
	return io.Discard
}

func (a *App) ask(prompt, def string) (string, error) {
	return GetWithDefault(a.reader, prompt, def, a.prompts())
}

// Login activates the user given as argument or typed at the prompt. A JWT
// is verified and replaced by the user it names.
func (a *App) Login(ctx context.Context, args []string) error {
	var (
		who string
		err error
	)
	switch {
	case len(args) > 0:
		who = args[0]
	case a.interactive:
		who, err = GetSecret("User id or token", a.out)
	default:
		who, err = GetSimpleText(a.reader, "User id or token", a.prompts())
	}
	if err != nil {
		return err
	}
	if who == "" {
		return common.ErrInvalidUser
	}

	if identity.LooksLikeToken(who) {
		if a.verifier == nil {
			return errors.New("token login is not configured")
		}
		if who, err = a.verifier.UserID(who); err != nil {
			a.log.Warn(ctx, "token rejected", "error", err)
			return err
		}
	}

	if err := a.sess.Activate(ctx, who); err != nil {
		a.log.Error(ctx, "activation failed", "user_id", who, "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", who)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	who := a.sess.UserID()
	a.sess.Deactivate()
	fmt.Fprintf(a.out, "Logged out %s.\n", who)
	return nil
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return args[0], nil
}

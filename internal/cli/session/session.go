package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/cli/styles"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/session"
)

// ErrLoginFailed means the store did not accept the credentials
var ErrLoginFailed = errors.New("login failed")

// LoginStore is what Login needs from the daemon
type LoginStore interface {
	Login(ctx context.Context, login dispatch.LoginPayload) (dispatch.Outcome, error)
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the store",
		Long: `Sign in with an existing account. The session is kept in
~/.tienda/session.yaml until you run tienda logout.

Examples:
  # Interactive prompt
  tienda login

  # Scripted
  echo "$PASSWORD" | tienda login --username=marta --password-stdin
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runLogin)),
	}

	cmd.Flags().String("username", "", "Username or email (prompted when omitted)")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin instead of prompting")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed in account",
		Args:  cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			sess, err := cli.OpenSession()
			if err != nil {
				return nil, err
			}
			return Logout(sess)
		})),
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			sess, err := cli.OpenSession()
			if err != nil {
				return nil, err
			}
			return Status{Session: sess.Current()}, nil
		})),
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

// Status reports who is signed in
type Status struct {
	Session *session.Session `json:"session"`
}

// Human renders the status line
func (s Status) Human() string {
	if s.Session == nil {
		return styles.SubtitleStyle.Render("Not signed in. Run tienda login.")
	}
	return styles.Field("Signed in as", s.Session.Username)
}

// Login sends creds to the store and records the account in writer
func Login(ctx context.Context, store LoginStore, writer forms.SessionWriter, creds Credentials) (*models.User, error) {
	outcome, err := store.Login(ctx, dispatch.LoginPayload{
		Credential: strings.TrimSpace(creds.Username),
		Password:   creds.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !outcome.OK() {
		msgs := slices.Collect(maps.Values(outcome.Errors))
		slices.Sort(msgs)
		return nil, fmt.Errorf("%w: %s", ErrLoginFailed, strings.Join(msgs, "; "))
	}
	if outcome.User == nil {
		return nil, fmt.Errorf("%w: the store returned no account", ErrLoginFailed)
	}
	if err := writer.SignIn(outcome.User); err != nil {
		return nil, err
	}
	return outcome.User, nil
}

// Logout clears the session. Logging out twice is not an error.
func Logout(sess *session.Store) (Status, error) {
	if err := sess.SignOut(); err != nil {
		return Status{}, err
	}
	return Status{}, nil
}

// signedIn is printed after a successful login
type signedIn struct {
	User *models.User `json:"user"`
}

func (s signedIn) GetID() int { return s.User.ID }

func (s signedIn) Human() string {
	return styles.SuccessStyle.Render("Signed in as " + s.User.Username)
}

// readPassword reads the first line of r
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(ctx context.Context, args *handler.Arguments) (any, error) {
	c, err := cli.NewCLI(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	creds := Credentials{Username: args.GetString("username", "")}

	if args.GetBool("password-stdin") {
		if creds.Username == "" {
			return nil, fmt.Errorf("%w: --password-stdin needs --username", cli.ErrInvalidFlag)
		}
		creds.Password, err = readPassword(args.GetCmd().InOrStdin())
		if err != nil {
			return nil, err
		}
	} else {
		if creds.Username == "" {
			creds.Username = session.SuggestedUsername()
		}
		if err := LoginForm(&creds, c.Config.ColorScheme).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, errors.New("login cancelled")
			}
			return nil, err
		}
	}

	user, err := Login(ctx, c.Client, c.Session, creds)
	if err != nil {
		return nil, err
	}
	return signedIn{User: user}, nil
}

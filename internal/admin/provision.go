// Package admin implements the operator command that creates accounts
// directly against the store, including admin accounts.
package admin

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/server/users"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
)

// Options are the account fields given on the command line.
type Options struct {
	Email string
	Name  string
	Role  string
}

// Provisioner creates an account without starting a session.
type Provisioner interface {
	Provision(ctx context.Context, in users.RegisterInput) (*users.PublicUser, error)
}

// ParseOptions reads -email, -name and -role from args; server flags in
// the same argument list are ignored.
func ParseOptions(args []string) (Options, error) {
	opts := Options{Role: common.RoleAdmin}

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Email, "email", "", "account email")
	fs.StringVar(&opts.Name, "name", "", "display name")
	fs.StringVar(&opts.Role, "role", opts.Role, "role (user|admin)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email", "-name", "-role"})); err != nil {
		return Options{}, err
	}

	if opts.Email == "" {
		return Options{}, errors.New("-email is required")
	}
	if opts.Name == "" {
		opts.Name = opts.Email
	}
	if !common.ValidRole(opts.Role) {
		return Options{}, fmt.Errorf("%w: %q", users.ErrInvalidRole, opts.Role)
	}
	return opts, nil
}

// Provision asks for the password on in/out, validates the account and
// creates it.
func Provision(ctx context.Context, p Provisioner, opts Options, in io.Reader, out io.Writer) (*users.PublicUser, error) {
	pw, err := GetPassword(bufio.NewReader(in), out)
	if err != nil {
		return nil, err
	}

	if err := validation.Account(opts.Name, opts.Email, pw); err != nil {
		return nil, err
	}

	user, err := p.Provision(ctx, users.RegisterInput{
		Name:     opts.Name,
		Email:    opts.Email,
		Password: pw,
		Role:     opts.Role,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "created %s account %s (%s)\n", user.Role, user.Email, user.ID)
	return user, nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/demo"
)

type LoginCmd struct {
	Identity string `arg:"" help:"Identity to track and report as."`
	Employee string `help:"Reporting-service employee code to register."`
	Password string `help:"Reporting-service password for --employee."`
}

func (c *LoginCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	identity := c.Identity
	if demo.IsDemoUser(c.Employee, c.Password) || identity == constants.DemoNamespace {
		identity = constants.DemoNamespace
	} else if c.Employee != "" {
		if err := appCtx.API.SaveCredentials(ctx, c.Employee, c.Password); err != nil {
			return fmt.Errorf("register credentials: %w", err)
		}
	}

	if err := appCtx.KV.Set(ctx, identityKey, []byte(identity)); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}

	if identity == constants.DemoNamespace {
		fmt.Println("Signed in to demo mode; data stays local")
	} else {
		fmt.Printf("Signed in as %s\n", identity)
	}
	return nil
}

// LogoutCmd tears the session down: the project cache for the identity is
// invalidated and the remembered identity forgotten. Tracked entries stay in
// their namespace and reappear on the next sign-in.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if appCtx.Identity == "" {
		fmt.Println("Not signed in")
		return nil
	}

	if err := appCtx.Cache.Invalidate(ctx, appCtx.Identity); err != nil {
		return err
	}
	if err := appCtx.KV.Remove(ctx, identityKey); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	fmt.Println("Signed out")
	return nil
}

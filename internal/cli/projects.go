package cli

import (
	"context"
	"fmt"
)

type ProjectsCmd struct {
	Refresh bool `help:"Bypass the cache and refetch from the service."`
}

func (c *ProjectsCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	identity, err := appCtx.RequireIdentity()
	if err != nil {
		return err
	}

	get := appCtx.Cache.Get
	if c.Refresh {
		get = appCtx.Cache.Refresh
	}
	projects, err := get(ctx, identity)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects assigned")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%-10s  %-30s  %s\n", p.Code, p.ShortDescription, p.AccountName)
	}
	return nil
}

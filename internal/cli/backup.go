package cli

import (
	"fmt"

	"github.com/dayhive/dayhive/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(appCtx *Context) error {
	m := backup.NewManager(appCtx.StorePath)
	path, err := m.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(appCtx *Context) error {
	m := backup.NewManager(appCtx.StorePath)
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %6d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore from." type:"path"`
}

func (c *BackupRestoreCmd) Run(appCtx *Context) error {
	m := backup.NewManager(appCtx.StorePath)
	if err := m.Restore(c.Path); err != nil {
		return err
	}
	fmt.Println("Store restored")
	return nil
}

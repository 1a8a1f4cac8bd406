package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/dayhive/dayhive/internal/entrystore"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(appCtx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable
	if err := checkStorage(appCtx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: at most one active entry per identity
	if appCtx.Identity != "" {
		if err := checkActiveInvariant(appCtx); err != nil {
			fmt.Printf("❌ Active entries: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Active entries: OK\n")
		}
	} else {
		fmt.Printf("⊘ Active entries: SKIPPED (not signed in)\n")
	}

	// Check 3: no second dayhive process sharing the storage file
	if err := checkDuplicateProcess(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	// Check 4: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func checkStorage(appCtx *Context) error {
	_, err := LoadIdentity(context.Background(), appCtx.KV)
	return err
}

func checkActiveInvariant(appCtx *Context) error {
	if _, err := appCtx.RequireIdentity(); err != nil {
		return err
	}
	entries, err := appCtx.Store.Load(context.Background())
	if err != nil {
		return err
	}
	active := 0
	for _, e := range entries {
		if !e.Completed() {
			active++
		}
	}
	if active > 1 {
		return fmt.Errorf("%d active entries found; stop tracking and edit the extras", active)
	}
	// Keep entrystore's view and the raw count honest with each other.
	if active == 1 && entrystore.Active(entries) == nil {
		return fmt.Errorf("active entry projection disagrees with the stored collection")
	}
	return nil
}

// The storage file is rewritten wholesale on every mutation, so two dayhive
// processes sharing it can silently drop each other's writes.
func checkDuplicateProcess() error {
	self := filepath.Base(os.Args[0])
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not list processes: %v", err)
	}
	count := 0
	for _, p := range procs {
		if strings.EqualFold(p.Executable(), self) {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("found %d running %s processes; concurrent use risks lost updates", count, self)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %v, which is implausibly old", now)
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset %ds is out of range", offset)
	}
	return nil
}

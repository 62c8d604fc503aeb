package integration

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/git-identity/pkg/identity"
	"github.com/doodlesbykumbi/git-identity/pkg/kvstore"
	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	t            *testing.T
	ws           *Workspace
	inRepository bool
	lastErr      error
	removed      []string
}

// NewStepsContext creates a new steps context
func NewStepsContext(t *testing.T) *StepsContext {
	return &StepsContext{t: t}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^an empty home directory$`, s.anEmptyHomeDirectory)
	sc.Step(`^I am inside a repository$`, s.iAmInsideARepository)
	sc.Step(`^I am outside any repository$`, s.iAmOutsideAnyRepository)
	sc.Step(`^the (global|local) config contains:$`, s.theConfigContains)

	// Registry steps
	sc.Step(`^I add identity "([^"]*)" named "([^"]*)" with email "([^"]*)"$`, s.iAddIdentity)
	sc.Step(`^I add identity "([^"]*)" named "([^"]*)" with email "([^"]*)" and signing key "([^"]*)"$`, s.iAddIdentityWithSigningKey)
	sc.Step(`^I activate "([^"]*)"$`, s.iActivate)
	sc.Step(`^I remove identity "([^"]*)"$`, s.iRemoveIdentity)
	sc.Step(`^I clear the active identity$`, s.iClearTheActiveIdentity)

	// Assertion steps
	sc.Step(`^the global identities should be "([^"]*)"$`, s.theGlobalIdentitiesShouldBe)
	sc.Step(`^the (global|local) config should contain exactly:$`, s.theConfigShouldContainExactly)
	sc.Step(`^the (global|local) config should be empty$`, s.theConfigShouldBeEmpty)
	sc.Step(`^the operation should succeed$`, s.theOperationShouldSucceed)
	sc.Step(`^the operation should fail with "([^"]*)"$`, s.theOperationShouldFailWith)
	sc.Step(`^(\d+) keys? should have been removed$`, s.keysShouldHaveBeenRemoved)
	sc.Step(`^the current identity should be "([^"]*)"$`, s.theCurrentIdentityShouldBe)
	sc.Step(`^there should be no current identity$`, s.thereShouldBeNoCurrentIdentity)
}

// Background steps

func (s *StepsContext) anEmptyHomeDirectory() error {
	ws, err := NewWorkspace(s.t.TempDir())
	if err != nil {
		return err
	}
	s.ws = ws
	s.inRepository = true
	return nil
}

func (s *StepsContext) iAmInsideARepository() error {
	s.inRepository = true
	return nil
}

func (s *StepsContext) iAmOutsideAnyRepository() error {
	s.inRepository = false
	return nil
}

func (s *StepsContext) store(scope string) kvstore.Store {
	if scope == "local" {
		return s.ws.Local
	}
	return s.ws.Global
}

func (s *StepsContext) theConfigContains(scope string, table *godog.Table) error {
	st := s.store(scope)
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected key and value, got %d cells", len(row.Cells))
		}
		if err := st.SetString(row.Cells[0].Value, row.Cells[1].Value); err != nil {
			return err
		}
	}
	return nil
}

// Registry steps

func (s *StepsContext) registry() *registry.Registry {
	return s.ws.Registry(s.inRepository)
}

func (s *StepsContext) iAddIdentity(id, name, email string) error {
	s.lastErr = s.registry().Add(registry.ScopeGlobal, identity.Identity{ID: id, Name: name, Email: email})
	return nil
}

func (s *StepsContext) iAddIdentityWithSigningKey(id, name, email, key string) error {
	s.lastErr = s.registry().Add(registry.ScopeGlobal, identity.Identity{
		ID:         id,
		Name:       name,
		Email:      email,
		SigningKey: identity.Optional(key),
	})
	return nil
}

func (s *StepsContext) iActivate(id string) error {
	_, s.lastErr = s.registry().Activate(id)
	return nil
}

func (s *StepsContext) iRemoveIdentity(id string) error {
	s.removed, s.lastErr = s.registry().Remove(registry.ScopeGlobal, id)
	return nil
}

func (s *StepsContext) iClearTheActiveIdentity() error {
	s.removed, s.lastErr = s.registry().RemoveAllActive()
	return nil
}

// Assertion steps

func (s *StepsContext) theGlobalIdentitiesShouldBe(expected string) error {
	ids, err := s.registry().List(registry.ScopeGlobal)
	if err != nil {
		return err
	}
	var want []string
	if expected != "" {
		want = strings.Split(expected, ",")
	}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected identities %q, got %q", want, ids)
	}
	return nil
}

func (s *StepsContext) snapshot(scope string) (map[string]string, error) {
	entries, err := s.store(scope).Entries("")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Name] = e.Value
	}
	return out, nil
}

func (s *StepsContext) theConfigShouldContainExactly(scope string, table *godog.Table) error {
	want := map[string]string{}
	for _, row := range table.Rows {
		want[row.Cells[0].Value] = row.Cells[1].Value
	}
	got, err := s.snapshot(scope)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected %s config %v, got %v", scope, want, got)
	}
	return nil
}

func (s *StepsContext) theConfigShouldBeEmpty(scope string) error {
	got, err := s.snapshot(scope)
	if err != nil {
		return err
	}
	if len(got) != 0 {
		keys := make([]string, 0, len(got))
		for k := range got {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("expected empty %s config, got keys %v", scope, keys)
	}
	return nil
}

func (s *StepsContext) theOperationShouldSucceed() error {
	if s.lastErr != nil {
		return fmt.Errorf("expected success, got %w", s.lastErr)
	}
	return nil
}

var errorsByName = map[string]error{
	"no such identity":  registry.ErrNoSuchIdentity,
	"no local scope":    registry.ErrNoLocalScope,
	"inconsistent":      registry.ErrInconsistent,
	"empty identity id": identity.ErrEmptyID,
}

func (s *StepsContext) theOperationShouldFailWith(name string) error {
	target, ok := errorsByName[name]
	if !ok {
		return fmt.Errorf("unknown error %q", name)
	}
	if !errors.Is(s.lastErr, target) {
		return fmt.Errorf("expected %q, got %v", name, s.lastErr)
	}
	return nil
}

func (s *StepsContext) keysShouldHaveBeenRemoved(count int) error {
	if len(s.removed) != count {
		return fmt.Errorf("expected %d removed keys, got %v", count, s.removed)
	}
	return nil
}

func (s *StepsContext) theCurrentIdentityShouldBe(id string) error {
	current, err := s.registry().Current()
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("expected current identity %q, got none", id)
	}
	if current.ID != id {
		return fmt.Errorf("expected current identity %q, got %q (%s)", id, current.ID, current)
	}
	return nil
}

func (s *StepsContext) thereShouldBeNoCurrentIdentity() error {
	current, err := s.registry().Current()
	if err != nil {
		return err
	}
	if current != nil {
		return fmt.Errorf("expected no current identity, got %s", current)
	}
	return nil
}

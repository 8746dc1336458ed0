package fixture

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/testapi"
	"github.com/leggera/lg2e2e/pkg/ui"
	"github.com/leggera/lg2e2e/pkg/ui/material"
)

// Session brings a fresh browser page into a known state: app started, user logged in, editor open.
type Session struct {
	Page     playwright.Page
	API      *testapi.Client
	Login    *ui.LoginPage
	Password string // password of users created by the testing api
}

// NewSession makes a session for page against the deployment api points to.
func NewSession(page playwright.Page, api *testapi.Client, deployURL, build, password string) *Session {
	return &Session{
		Page:     page,
		API:      api,
		Login:    ui.NewLoginPage(page, deployURL, build),
		Password: password,
	}
}

// TestUser creates a fresh registered user.
func (s *Session) TestUser(ctx context.Context) (ui.Credentials, error) {
	users, err := s.API.CreateTestUsers(ctx, 1)
	if err != nil {
		return ui.Credentials{}, err
	}
	return ui.Credentials{Username: users[0], Password: s.Password}, nil
}

// FastStart creates a user and opens the app with the startup animation done.
func (s *Session) FastStart(ctx context.Context) (ui.Credentials, error) {
	user, err := s.TestUser(ctx)
	if err != nil {
		return ui.Credentials{}, err
	}
	if err := s.Login.AppStart(); err != nil {
		return ui.Credentials{}, err
	}
	return user, nil
}

// LoggedInUser creates a user and logs in with keep-me-logged, landing on the dashboard.
func (s *Session) LoggedInUser(ctx context.Context) (ui.Credentials, error) {
	user, err := s.TestUser(ctx)
	if err != nil {
		return ui.Credentials{}, err
	}
	if err := s.Login.GoToAppRoot(); err != nil {
		return ui.Credentials{}, err
	}
	if err := s.Login.Login(user, true); err != nil {
		return ui.Credentials{}, err
	}
	if err := s.Login.Snackbar.Dismiss(); err != nil {
		return ui.Credentials{}, fmt.Errorf("login of %s: %w", user.Username, err)
	}
	return user, nil
}

// LoggedInAnon logs in as a new anonymous user, landing on the dashboard.
func (s *Session) LoggedInAnon() error {
	if err := s.Login.GoToAppRoot(); err != nil {
		return err
	}
	if err := s.Login.GoToAnonButton.Click(); err != nil {
		return fmt.Errorf("open anon login: %w", err)
	}
	if err := s.Login.ContinueAsAnonButton.Click(); err != nil {
		return fmt.Errorf("continue as anon: %w", err)
	}
	if err := s.Login.Snackbar.Dismiss(); err != nil {
		return fmt.Errorf("anon login: %w", err)
	}
	return nil
}

// EditorReady logs in a new user, creates a page from scratch with the second application
// and opens it in the editor, waiting for monaco to load. It returns the user and the title of
// the created page.
func (s *Session) EditorReady(ctx context.Context) (ui.Credentials, string, error) {
	user, err := s.LoggedInUser(ctx)
	if err != nil {
		return ui.Credentials{}, "", err
	}
	wizard := ui.NewWizardPage(s.Page)
	if err := wizard.Navigate(); err != nil {
		return ui.Credentials{}, "", err
	}
	title := PageTitle()
	if err := wizard.CreatePage(material.ByOrder(2), title); err != nil {
		return ui.Credentials{}, "", fmt.Errorf("create page %q: %w", title, err)
	}
	if err := wizard.FinishButton.Click(); err != nil {
		return ui.Credentials{}, "", fmt.Errorf("open editor: %w", err)
	}
	if err := ui.NewEditorPage(s.Page).WaitForMonaco(); err != nil {
		return ui.Credentials{}, "", fmt.Errorf("editor of %q: %w", title, err)
	}
	return user, title, nil
}

// PageTitle returns a unique title for pages created by tests.
func PageTitle() string {
	return "e2e page " + uuid.NewString()[:8]
}

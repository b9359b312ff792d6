// Package scenarios holds the fixed table of login scenarios and the runner
// that plays them against a page.
package scenarios

import (
	"login_automation/domain/entities"
)

// Suites used in scenario metadata.
const (
	SuiteEndToEnd    = "End-to-End Tests"
	SuiteIntegration = "Integration Tests"

	FeatureAuthentication = "Authentication"
	FeatureLoginPage      = "Login Page Object"

	owner = "QA Team"
)

// Scenario names.
const (
	SuccessfulLogin                           = "SuccessfulLogin"
	NavigateToInventoryAfterSuccessfulLogin   = "NavigateToInventoryAfterSuccessfulLogin"
	LogoutAfterSuccessfulLogin                = "LogoutAfterSuccessfulLogin"
	FailedLoginInvalidCredentials             = "FailedLogin_InvalidCredentials"
	FailedLoginEmptyCredentials               = "FailedLogin_EmptyCredentials"
	FailedLoginLockedUser                     = "FailedLogin_LockedUser"
	LoginIntegratesWithPageAndNavigates       = "LoginIntegratesWithPageAndNavigatesSuccessfully"
	LoginHandlesInvalidCredentialsWithMessage = "LoginHandlesInvalidCredentialsAndDisplaysError"
)

func navigate(name string) entities.Step {
	return entities.Step{Name: name, Action: &entities.Action{Type: entities.ActionNavigate, Path: entities.PathLogin}}
}

func login(name string, creds entities.Credentials) entities.Step {
	return entities.Step{Name: name, Action: &entities.Action{Type: entities.ActionLogin, Credentials: creds}}
}

func click(name, selector string) entities.Step {
	return entities.Step{Name: name, Action: &entities.Action{Type: entities.ActionClick, Selector: selector}}
}

func visible(name, selector string) entities.Step {
	return entities.Step{Name: name, Assertion: &entities.Assertion{Type: entities.AssertVisible, Selector: selector}}
}

func textEquals(name, selector, expected string) entities.Step {
	return entities.Step{Name: name, Assertion: &entities.Assertion{Type: entities.AssertTextEqual, Selector: selector, Expected: expected}}
}

func urlEquals(name, path string) entities.Step {
	return entities.Step{Name: name, Assertion: &entities.Assertion{Type: entities.AssertURLEqual, Expected: path}}
}

func e2e(description string, severity entities.Severity, tags ...string) entities.Metadata {
	return entities.Metadata{
		Suite:       SuiteEndToEnd,
		Feature:     FeatureAuthentication,
		Description: description,
		Severity:    severity,
		Owner:       owner,
		Tags:        tags,
	}
}

func integration(description string, tags ...string) entities.Metadata {
	return entities.Metadata{
		Suite:       SuiteIntegration,
		Feature:     FeatureLoginPage,
		Description: description,
		Severity:    entities.SeverityCritical,
		Owner:       owner,
		Tags:        tags,
	}
}

// Catalog returns the scenario table. Every call builds a fresh copy, so
// callers may modify what they get.
func Catalog() []entities.Scenario {
	return []entities.Scenario{
		{
			Name:     SuccessfulLogin,
			Metadata: e2e("Verifies that a user can successfully log in with valid credentials and see the inventory list", entities.SeverityCritical, "Smoke", "Login"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Enter valid credentials and login", entities.StandardUser),
				visible("Verify inventory list is visible", entities.SelectorInventoryList),
			},
		},
		{
			Name:     NavigateToInventoryAfterSuccessfulLogin,
			Metadata: e2e("Verifies that after successful login, user is redirected to inventory page with correct URL and container is visible", entities.SeverityCritical, "Smoke", "Navigation"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Login with valid credentials", entities.StandardUser),
				urlEquals("Verify URL redirects to inventory page", entities.PathInventory),
				visible("Verify inventory container is visible", entities.SelectorInventoryContainer),
			},
		},
		{
			Name:     LogoutAfterSuccessfulLogin,
			Metadata: e2e("Verifies that a user can successfully logout after logging in and returns to login page", entities.SeverityNormal, "Regression", "Logout"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Login with valid credentials", entities.StandardUser),
				click("Open burger menu", entities.SelectorMenuButton),
				click("Click logout link", entities.SelectorLogoutLink),
				urlEquals("Verify redirected to login page", entities.PathLogin),
				visible("Verify login button is visible", entities.SelectorLoginButton),
			},
		},
		{
			Name:     FailedLoginInvalidCredentials,
			Metadata: e2e("Verifies that login fails with invalid credentials and displays appropriate error message", entities.SeverityCritical, "Smoke", "Validation", "Negative"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Attempt login with invalid credentials", entities.UnknownUser),
				textEquals("Verify error message is displayed", entities.SelectorError, entities.MsgInvalidCredentials),
			},
		},
		{
			Name:     FailedLoginEmptyCredentials,
			Metadata: e2e("Verifies that login fails when no credentials are provided and displays username required error", entities.SeverityNormal, "Regression", "Validation", "Negative"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				click("Click login button without entering credentials", entities.SelectorLoginButton),
				textEquals("Verify username required error is displayed", entities.SelectorError, entities.MsgUsernameRequired),
			},
		},
		{
			Name:     FailedLoginLockedUser,
			Metadata: e2e("Verifies that login fails for locked out user and displays locked out error message", entities.SeverityCritical, "Smoke", "Validation", "Negative"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Attempt login with locked out user", entities.LockedOutUser),
				textEquals("Verify locked out error message is displayed", entities.SelectorError, entities.MsgLockedOut),
			},
		},
		{
			Name:     LoginIntegratesWithPageAndNavigates,
			Metadata: integration("Verifies that LoginPage integrates correctly with the page and navigates successfully to inventory after login", "Integration", "Login"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Perform login with valid credentials", entities.StandardUser),
				urlEquals("Verify URL changed to inventory page", entities.PathInventory),
				visible("Verify inventory container is visible on page", entities.SelectorInventoryContainer),
			},
		},
		{
			Name:     LoginHandlesInvalidCredentialsWithMessage,
			Metadata: integration("Verifies that LoginPage handles invalid credentials correctly and displays error message", "Integration", "Validation", "Negative"),
			Steps: []entities.Step{
				navigate("Navigate to login page"),
				login("Attempt login with invalid credentials", entities.UnknownUser),
				visible("Verify error message is displayed", entities.SelectorError),
			},
		},
	}
}

// Find returns the scenario with the given name.
func Find(name string) (entities.Scenario, bool) {
	for _, sc := range Catalog() {
		if sc.Name == name {
			return sc, true
		}
	}
	return entities.Scenario{}, false
}

// Filter returns the scenarios carrying at least one of tags. With no tags
// it returns the whole catalog.
func Filter(tags ...string) []entities.Scenario {
	all := Catalog()
	if len(tags) == 0 {
		return all
	}

	var out []entities.Scenario
	for _, sc := range all {
		for _, tag := range tags {
			if sc.Metadata.HasTag(tag) {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}

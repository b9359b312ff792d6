// Package demosite serves a small replica of the demo store's login flow.
// It lets the browser tests and the CLI run hermetically against the same
// markup, selectors and messages as the public site.
package demosite

import (
	"login_automation/domain/entities"
)

// SessionCookie carries the logged-in username, as on the public site.
const SessionCookie = "session-username"

// account is one provisioned user.
type account struct {
	password string
	locked   bool
}

var accounts = map[string]account{
	entities.StandardUser.Username:    {password: entities.SharedPassword},
	entities.LockedOutUser.Username:   {password: entities.SharedPassword, locked: true},
	entities.ProblemUser.Username:     {password: entities.SharedPassword},
	entities.PerformanceUser.Username: {password: entities.SharedPassword},
	entities.ErrorUser.Username:       {password: entities.SharedPassword},
	entities.VisualUser.Username:      {password: entities.SharedPassword},
}

// usernames in the order the login page lists them.
var usernames = []string{
	entities.StandardUser.Username,
	entities.LockedOutUser.Username,
	entities.ProblemUser.Username,
	entities.PerformanceUser.Username,
	entities.ErrorUser.Username,
	entities.VisualUser.Username,
}

// Product is one inventory entry.
type Product struct {
	Name  string
	Price float64
}

// Products listed on the inventory page.
var Products = []Product{
	{Name: "Sauce Labs Backpack", Price: 29.99},
	{Name: "Sauce Labs Bike Light", Price: 9.99},
	{Name: "Sauce Labs Bolt T-Shirt", Price: 15.99},
	{Name: "Sauce Labs Fleece Jacket", Price: 49.99},
	{Name: "Sauce Labs Onesie", Price: 7.99},
	{Name: "Test.allTheThings() T-Shirt (Red)", Price: 15.99},
}

// authenticate checks creds in the same order as the public site: required
// fields first, then the password, then the lock.
func authenticate(creds entities.Credentials) (errMsg string, ok bool) {
	switch {
	case creds.Username == "":
		return entities.MsgUsernameRequired, false
	case creds.Password == "":
		return entities.MsgPasswordRequired, false
	}
	acc, found := accounts[creds.Username]
	if !found || acc.password != creds.Password {
		return entities.MsgInvalidCredentials, false
	}
	if acc.locked {
		return entities.MsgLockedOut, false
	}
	return "", true
}

// activeUser reports whether username may hold a session.
func activeUser(username string) bool {
	acc, found := accounts[username]
	return found && !acc.locked
}

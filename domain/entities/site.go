package entities

// DefaultBaseURL is the public demo store the catalog is written against.
const DefaultBaseURL = "https://www.saucedemo.com/"

// Selectors of the login form and the pages behind it. They mirror the
// markup of the target application; a markup change there breaks them.
const (
	SelectorUsername    = "[data-test='username']"
	SelectorPassword    = "[data-test='password']"
	SelectorLoginButton = "[data-test='login-button']"
	SelectorError       = "[data-test='error']"

	SelectorInventoryContainer = ".inventory_container"
	SelectorInventoryList      = ".inventory_list"
	SelectorMenuButton         = "#react-burger-menu-btn"
	SelectorLogoutLink         = "#logout_sidebar_link"
)

// Paths relative to the base URL.
const (
	PathLogin     = ""
	PathInventory = "inventory.html"
)

// Error banner texts shown by the login form.
const (
	MsgInvalidCredentials = "Epic sadface: Username and password do not match any user in this service"
	MsgLockedOut          = "Epic sadface: Sorry, this user has been locked out."
	MsgUsernameRequired   = "Epic sadface: Username is required"
	MsgPasswordRequired   = "Epic sadface: Password is required"
	MsgInventoryNoSession = "Epic sadface: You can only access '/inventory.html' when you are logged in."
)

// SharedPassword is the password of every provisioned demo account.
const SharedPassword = "secret_sauce"

// Accounts provisioned by the target application.
var (
	StandardUser     = Credentials{Username: "standard_user", Password: SharedPassword}
	LockedOutUser    = Credentials{Username: "locked_out_user", Password: SharedPassword}
	ProblemUser      = Credentials{Username: "problem_user", Password: SharedPassword}
	PerformanceUser  = Credentials{Username: "performance_glitch_user", Password: SharedPassword}
	ErrorUser        = Credentials{Username: "error_user", Password: SharedPassword}
	VisualUser       = Credentials{Username: "visual_user", Password: SharedPassword}
	UnknownUser      = Credentials{Username: "invalid_user", Password: "wrong_password"}
	EmptyCredentials = Credentials{}
)

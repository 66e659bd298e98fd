package theme

// Token names a color slot in the theme.
type Token string

// Group is the semantic palette a token belongs to.
type Group string

const (
	GroupLogin Group = "login"
	GroupApp   Group = "app"
)

// Login screen palette.
const (
	LoginBackground       Token = "loginBackground"
	LoginCardBackground   Token = "loginCardBackground"
	LoginTitleColor       Token = "loginTitleColor"
	LoginTextColor        Token = "loginTextColor"
	LoginInputBackground  Token = "loginInputBackground"
	LoginInputBorder      Token = "loginInputBorder"
	LoginInputText        Token = "loginInputText"
	LoginButtonBackground Token = "loginButtonBackground"
	LoginButtonText       Token = "loginButtonText"
	LoginButtonHover      Token = "loginButtonHover"
	LoginLinkColor        Token = "loginLinkColor"
	LoginErrorColor       Token = "loginErrorColor"
)

// Application-wide palette.
const (
	PrimaryColor            Token = "primaryColor"
	SecondaryColor          Token = "secondaryColor"
	AccentColor             Token = "accentColor"
	BackgroundColor         Token = "backgroundColor"
	SurfaceColor            Token = "surfaceColor"
	TextColor               Token = "textColor"
	MutedTextColor          Token = "mutedTextColor"
	BorderColor             Token = "borderColor"
	HeaderBackground        Token = "headerBackground"
	HeaderText              Token = "headerText"
	SidebarBackground       Token = "sidebarBackground"
	SidebarText             Token = "sidebarText"
	SidebarActiveBackground Token = "sidebarActiveBackground"
	SidebarActiveText       Token = "sidebarActiveText"
)

type tokenSpec struct {
	token    Token
	variable string
	group    Group
}

// tokenTable is the contract between the theme backend and every stylesheet
// in the web client. Renaming a variable here breaks deployed CSS.
var tokenTable = []tokenSpec{
	{LoginBackground, "--login-background", GroupLogin},
	{LoginCardBackground, "--login-card-background", GroupLogin},
	{LoginTitleColor, "--login-title-color", GroupLogin},
	{LoginTextColor, "--login-text-color", GroupLogin},
	{LoginInputBackground, "--login-input-background", GroupLogin},
	{LoginInputBorder, "--login-input-border", GroupLogin},
	{LoginInputText, "--login-input-text", GroupLogin},
	{LoginButtonBackground, "--login-button-background", GroupLogin},
	{LoginButtonText, "--login-button-text", GroupLogin},
	{LoginButtonHover, "--login-button-hover", GroupLogin},
	{LoginLinkColor, "--login-link-color", GroupLogin},
	{LoginErrorColor, "--login-error-color", GroupLogin},

	{PrimaryColor, "--primary-color", GroupApp},
	{SecondaryColor, "--secondary-color", GroupApp},
	{AccentColor, "--accent-color", GroupApp},
	{BackgroundColor, "--background-color", GroupApp},
	{SurfaceColor, "--surface-color", GroupApp},
	{TextColor, "--text-color", GroupApp},
	{MutedTextColor, "--muted-text-color", GroupApp},
	{BorderColor, "--border-color", GroupApp},
	{HeaderBackground, "--header-background", GroupApp},
	{HeaderText, "--header-text", GroupApp},
	{SidebarBackground, "--sidebar-background", GroupApp},
	{SidebarText, "--sidebar-text", GroupApp},
	{SidebarActiveBackground, "--sidebar-active-background", GroupApp},
	{SidebarActiveText, "--sidebar-active-text", GroupApp},
}

var variableByToken = func() map[Token]string {
	m := make(map[Token]string, len(tokenTable))
	for _, s := range tokenTable {
		m[s.token] = s.variable
	}
	return m
}()

// Tokens returns every required token in table order.
func Tokens() []Token {
	out := make([]Token, len(tokenTable))
	for i, s := range tokenTable {
		out[i] = s.token
	}
	return out
}

// TokensIn returns the tokens of one palette group in table order.
func TokensIn(g Group) []Token {
	var out []Token
	for _, s := range tokenTable {
		if s.group == g {
			out = append(out, s.token)
		}
	}
	return out
}

// Variable returns the CSS custom property bound to t.
func Variable(t Token) (string, bool) {
	v, ok := variableByToken[t]
	return v, ok
}

// Known reports whether key names one of the fixed tokens.
func Known(key string) bool {
	_, ok := variableByToken[Token(key)]
	return ok
}

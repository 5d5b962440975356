package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/prosecraft/prosecraft/internal/account"
	"github.com/prosecraft/prosecraft/internal/ui"
)

var (
	loginEmail         string
	loginPasswordStdin bool

	updateName     string
	updateEmail    string
	updateLocation string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your prosecraft account",
	RunE:  runAccountShow,
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in profile and usage statistics",
	Args:  cobra.NoArgs,
	RunE:  runAccountShow,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to a registered account",
	Args:  cobra.NoArgs,
	RunE:  runAccountLogin,
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Args:  cobra.NoArgs,
	RunE:  runAccountRegister,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if err := a.accounts.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(ui.SuccessStyle.Render("✓ Signed out"))
		return nil
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your name, email or location",
	Args:  cobra.NoArgs,
	RunE:  runAccountUpdate,
}

func init() {
	accountLoginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	accountLoginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")

	accountUpdateCmd.Flags().StringVar(&updateName, "name", "", "New display name")
	accountUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "New email address")
	accountUpdateCmd.Flags().StringVar(&updateLocation, "location", "", "New location")

	accountCmd.AddCommand(accountShowCmd, accountLoginCmd, accountRegisterCmd, accountLogoutCmd, accountUpdateCmd)
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	acct, ok := a.accounts.Current()
	if !ok {
		fmt.Println(ui.MutedStyle.Render("Not signed in. Run 'prosecraft account login' or 'prosecraft account register'."))
		return nil
	}
	fmt.Println(renderAccount(acct))
	return nil
}

func renderAccount(acct account.Account) string {
	const width = 20
	profile := strings.Join([]string{
		ui.PrimaryStyle().Render(acct.Name),
		ui.MutedStyle.Render(acct.Email),
		"",
		ui.KeyValue("Location", acct.Location, width),
		ui.KeyValue("Member since", acct.MemberSince, width),
		ui.KeyValue("Plan", string(acct.Subscription), width),
	}, "\n")

	stats := acct.UsageStats
	usage := strings.Join([]string{
		ui.TableHeader.Render("Usage"),
		ui.KeyValue("Documents created", strconv.Itoa(stats.DocumentsCreated), width),
		ui.KeyValue("Words analyzed", strconv.Itoa(stats.WordsAnalyzed), width),
		ui.KeyValue("Grammar checks", strconv.Itoa(stats.GrammarChecks), width),
		ui.KeyValue("Style enhancements", strconv.Itoa(stats.StyleEnhancements), width),
	}, "\n")

	return ui.InfoBox.Render(profile) + "\n" + ui.Gap() + usage
}

func runAccountLogin(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	email := loginEmail
	var password string
	switch {
	case loginPasswordStdin:
		if email == "" {
			return errors.New("--password-stdin requires --email")
		}
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	case ui.IsInteractiveTerminal():
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(huh.ValidateNotEmpty()),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(huh.ValidateNotEmpty()),
			),
		).WithTheme(ui.HuhTheme())
		if err := form.Run(); err != nil {
			return err
		}
	default:
		return errors.New("login needs an interactive terminal or --email with --password-stdin")
	}

	acct, err := a.accounts.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Welcome back, " + acct.Name))
	return nil
}

func runAccountRegister(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if !ui.IsInteractiveTerminal() {
		return errors.New("register needs an interactive terminal")
	}

	var reg account.Registration
	ui.StartScreen("CREATE ACCOUNT", "Join prosecraft and start improving your writing")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full Name").Value(&reg.Name),
			huh.NewInput().Title("Email").Value(&reg.Email),
			huh.NewInput().Title("Location").Description("Optional").Value(&reg.Location),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters").
				EchoMode(huh.EchoModePassword).
				Value(&reg.Password),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&reg.ConfirmPassword),
			huh.NewConfirm().
				Title("I agree to the Terms of Service and Privacy Policy").
				Value(&reg.AcceptTerms),
		),
	).WithTheme(ui.HuhTheme())
	if err := form.Run(); err != nil {
		return err
	}

	acct, err := a.accounts.Register(cmd.Context(), reg)
	if err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Account created. Welcome, " + acct.Name))
	return nil
}

func runAccountUpdate(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	var upd account.Update
	flags := cmd.Flags()
	if flags.Changed("name") {
		upd.Name = &updateName
	}
	if flags.Changed("email") {
		upd.Email = &updateEmail
	}
	if flags.Changed("location") {
		upd.Location = &updateLocation
	}
	if upd.Name == nil && upd.Email == nil && upd.Location == nil {
		if !ui.IsInteractiveTerminal() {
			return errors.New("nothing to update; pass --name, --email or --location")
		}
		upd, err = promptAccountUpdate(a.accounts)
		if err != nil {
			return err
		}
	}

	acct, err := a.accounts.Update(cmd.Context(), upd)
	if err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Profile updated"))
	fmt.Println(renderAccount(acct))
	return nil
}

// promptAccountUpdate asks for new profile values and keeps only the changed ones.
func promptAccountUpdate(accounts *account.Service) (account.Update, error) {
	acct, ok := accounts.Current()
	if !ok {
		return account.Update{}, account.ErrNotSignedIn
	}
	name, email, location := acct.Name, acct.Email, acct.Location
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full Name").Value(&name),
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Location").Value(&location),
		),
	).WithTheme(ui.HuhTheme())
	if err := form.Run(); err != nil {
		return account.Update{}, err
	}
	return changedFields(acct, name, email, location), nil
}

func changedFields(acct account.Account, name, email, location string) account.Update {
	var upd account.Update
	if strings.TrimSpace(name) != acct.Name {
		upd.Name = &name
	}
	if !strings.EqualFold(strings.TrimSpace(email), acct.Email) {
		upd.Email = &email
	}
	if strings.TrimSpace(location) != acct.Location {
		upd.Location = &location
	}
	return upd
}

// runAccountMenu lists the account actions for the current session until
// the user goes back.
func runAccountMenu(ctx context.Context) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	var last string
	for {
		_, signedIn := a.accounts.Current()
		choice, err := ui.RunMenu("ACCOUNT", "Profile, sign in and usage", accountMenuItems(signedIn),
			ui.WithBackNavigation("Home"),
			ui.WithInitialSelectionID(last),
			ui.WithInfoSection(accountSection()),
		)
		if err != nil {
			return runAccountShow(accountShowCmd, nil)
		}
		switch choice {
		case ui.MenuActionBack, "":
			return nil
		case ui.MenuActionQuit:
			return huh.ErrUserAborted
		}
		last = choice

		cmd := accountActionCmd(choice)
		if cmd == nil {
			continue
		}
		cmd.SetContext(ctx)
		if err := cmd.RunE(cmd, nil); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("✗ "+err.Error()))
		}
		if err := waitForEnter("Press enter to return to your account"); err != nil {
			return err
		}
	}
}

func accountMenuItems(signedIn bool) []ui.MenuItem {
	if !signedIn {
		return []ui.MenuItem{
			{ID: "login", TitleText: "Sign in", Details: "Use an account registered on this device"},
			{ID: "register", TitleText: "Create account", Details: "Track your writing statistics"},
		}
	}
	return []ui.MenuItem{
		{ID: "show", TitleText: "Profile", Details: "Plan, member since and usage statistics"},
		{ID: "update", TitleText: "Edit profile", Details: "Change your name, email or location"},
		{ID: "logout", TitleText: "Sign out", Details: "Your account stays registered on this device"},
	}
}

func accountActionCmd(id string) *cobra.Command {
	switch id {
	case "show":
		return accountShowCmd
	case "login":
		return accountLoginCmd
	case "register":
		return accountRegisterCmd
	case "logout":
		return accountLogoutCmd
	case "update":
		return accountUpdateCmd
	default:
		return nil
	}
}

func accountSection() ui.InfoSection {
	section := ui.InfoSection{Title: "Account"}
	if app == nil {
		return section
	}
	acct, ok := app.accounts.Current()
	if !ok {
		section.Lines = []ui.InfoLine{{Label: "status", Value: "signed out"}}
		return section
	}
	section.Lines = []ui.InfoLine{
		{Label: "name", Value: acct.Name},
		{Label: "plan", Value: string(acct.Subscription)},
		{Label: "words", Value: strconv.Itoa(acct.UsageStats.WordsAnalyzed)},
	}
	return section
}

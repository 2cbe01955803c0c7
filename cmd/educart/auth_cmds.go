package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fracki1010/edu-cart-app/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and merge the guest cart into your account cart",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := ""
		if len(args) == 1 {
			username = args[0]
		} else {
			username = prompt("Username: ")
		}
		password := prompt("Password: ")

		ctx := cmd.Context()
		user, token, err := app.client.Login(ctx, api.Credentials{Username: username, Password: password})
		if err != nil {
			return err
		}
		if err := app.sessions.Set(user, token); err != nil {
			return err
		}
		fmt.Printf("Welcome back, %s!\n", displayName(user.Name, user.Username))

		// The first fetch under the new session migrates any guest items.
		cart, err := app.carts.Fetch(ctx)
		if err != nil {
			return err
		}
		if snap := app.carts.Snapshot(); len(snap.FailedMerges) > 0 {
			fmt.Printf("Warning: could not transfer from your guest cart: %s\n",
				strings.Join(snap.FailedMerges, ", "))
		}
		if !cart.IsEmpty() {
			fmt.Printf("Your cart has %d item(s), total %.2f.\n", len(cart.Items), cart.Total)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.sessions.Clear()
		fmt.Println("Logged out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := api.Registration{
			Username: prompt("Username: "),
			Name:     prompt("Name: "),
			Email:    prompt("Email: "),
			Password: prompt("Password: "),
		}

		ctx := cmd.Context()
		username, err := app.client.Register(ctx, reg)
		if err != nil {
			return err
		}

		user, token, err := app.client.Login(ctx, api.Credentials{Username: username, Password: reg.Password})
		if err != nil {
			return fmt.Errorf("registered, but login failed: %w", err)
		}
		if err := app.sessions.Set(user, token); err != nil {
			return err
		}
		fmt.Printf("Account %q created, you are logged in.\n", username)

		_, err = app.carts.Fetch(ctx)
		return err
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := app.sessions.Current()
		if !sess.Authenticated() {
			fmt.Println("Not logged in (guest mode; cart is stored on this machine).")
			return nil
		}
		if sess.User != nil {
			fmt.Printf("%s <%s> (%s)\n", sess.User.Username, sess.User.Email, sess.User.Role)
		} else {
			fmt.Println("Logged in.")
		}
		return nil
	},
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func displayName(name, username string) string {
	if name != "" {
		return name
	}
	return username
}

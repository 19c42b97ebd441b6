// internal/client/cli/repl.go
package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	SwitchForm(ctx context.Context) error
	Submit(ctx context.Context) error
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Reviews(ctx context.Context) error
	Search(ctx context.Context, title string) error
	Review(ctx context.Context) error
	Recommend(ctx context.Context) error
	EditUsername(ctx context.Context) error
	DeleteProfile(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF or "exit".
//
//	Anonymous:
//	  - switch         toggle between the sign-up and sign-in form
//	  - submit         submit the form currently shown
//	  - signup, login  submit the named form directly
//
//	Logged in:
//	  - profile        show name and username
//	  - reviews        list reviewed movies
//	  - search <title> look a movie up
//	  - review         comment on the last movie found
//	  - recommend      show a random page of movies
//	  - rename         change username
//	  - delete         delete the profile
//	  - logout
//
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cinelog (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := strings.Join(parts[1:], " ")

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, reviews, search <title>, review, recommend, rename, delete, logout, exit")
			} else {
				printlnFn("Available commands: switch, submit, signup, login, exit")
			}
			continue
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "switch":
				_ = a.SwitchForm(ctx)
			case "submit":
				_ = a.Submit(ctx)
			case "signup", "register":
				_ = a.SignUp(ctx)
			case "login":
				_ = a.Login(ctx)
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "profile":
			_ = a.Profile(ctx)
		case "reviews":
			_ = a.Reviews(ctx)
		case "search", "s":
			if args == "" {
				printlnFn("Usage: search <title>")
				continue
			}
			_ = a.Search(ctx, args)
		case "review":
			_ = a.Review(ctx)
		case "recommend", "more":
			_ = a.Recommend(ctx)
		case "rename":
			_ = a.EditUsername(ctx)
		case "delete":
			_ = a.DeleteProfile(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

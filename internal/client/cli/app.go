// internal/client/cli/app.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"cinelog/internal/client/session"
	"cinelog/internal/movies"
)

// App is the terminal view over a session controller.
type App struct {
	ctrl      *session.Controller
	in        *prompter
	out       io.Writer
	lastMovie *movies.Movie
}

// NewApp creates an App reading from scanner and writing to out.
func NewApp(ctrl *session.Controller, scanner *bufio.Scanner, out io.Writer) *App {
	return &App{
		ctrl: ctrl,
		in:   &prompter{scanner: scanner, out: out},
		out:  out,
	}
}

// Run starts the REPL. It returns when input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "WELCOME! Dear movie fanatics! (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.in.scanner)
}

func (a *App) status() string {
	return a.ctrl.Session().String()
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Session().LoggedIn
}

func (a *App) SwitchForm(ctx context.Context) error {
	a.ctrl.ToggleSignUp()
	if a.ctrl.Session().ShowSignUp {
		fmt.Fprintln(a.out, "Sign-up form selected. Type 'submit' to create an account.")
	} else {
		fmt.Fprintln(a.out, "Sign-in form selected. Type 'submit' to log in.")
	}
	return nil
}

func (a *App) Submit(ctx context.Context) error {
	if a.ctrl.Session().ShowSignUp {
		return a.SignUp(ctx)
	}
	return a.Login(ctx)
}

func (a *App) SignUp(ctx context.Context) error {
	name, err := a.in.Text("Name")
	if err != nil {
		return err
	}
	userName, err := a.in.Text("User name")
	if err != nil {
		return err
	}
	password, err := a.in.Password("Password")
	if err != nil {
		return err
	}

	user, err := a.ctrl.SignUp(ctx, name, userName, password)
	if err != nil {
		fmt.Fprintln(a.out, "Sign-up failed.")
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := a.in.Text("User name")
	if err != nil {
		return err
	}
	password, err := a.in.Password("Password")
	if err != nil {
		return err
	}

	user, err := a.ctrl.Login(ctx, userName, password)
	if err != nil {
		fmt.Fprintln(a.out, "An error occurred while signing in! Please check your username and password, then try again!")
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", user.UserName)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	user, err := a.ctrl.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Name: %s\nUser Name: %s\n", user.Name, user.UserName)
	return nil
}

func (a *App) Reviews(ctx context.Context) error {
	reviews, err := a.ctrl.Reviews(ctx)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviewed movies yet.")
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "%s\n  %s\n", r.MovieTitle, r.Comment)
	}
	return nil
}

func (a *App) Search(ctx context.Context, title string) error {
	movie, err := a.ctrl.Search(ctx, title)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			fmt.Fprintln(a.out, "Movie not found.")
		}
		return err
	}
	a.lastMovie = movie

	fmt.Fprintf(a.out, "Title: %s\nDirected by: %s\nWritten by: %s\nStarring: %s\nPlot: %s\nRuntime: %s\n",
		movie.Title, movie.Director, movie.Writer, movie.Actors, movie.Plot, movie.Runtime)
	fmt.Fprintf(a.out, "Rating: %s\nRelease Date: %s\nRevenue: %s\n",
		nullable(movie.Rating.Valid, movie.Rating.Decimal.String()),
		movie.Released,
		nullable(movie.BoxOffice.Valid, "$"+movie.BoxOffice.Decimal.StringFixed(0)))
	return nil
}

func (a *App) Review(ctx context.Context) error {
	if a.lastMovie == nil {
		fmt.Fprintln(a.out, "Search for a movie first.")
		return nil
	}
	comment, err := a.in.Text(fmt.Sprintf("Comment on %s", a.lastMovie.Title))
	if err != nil {
		return err
	}
	if _, err := a.ctrl.Review(ctx, a.lastMovie, comment); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Review saved.")
	a.lastMovie = nil
	return nil
}

func (a *App) Recommend(ctx context.Context) error {
	list, err := a.ctrl.Recommend(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Recommended movies for you:")
	for _, m := range list {
		fmt.Fprintf(a.out, "  %s (%s)\n", m.Title, m.Year)
	}
	return nil
}

func (a *App) EditUsername(ctx context.Context) error {
	newUserName, err := a.in.Text("New username")
	if err != nil {
		return err
	}
	user, err := a.ctrl.EditUsername(ctx, newUserName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Username changed to %s.\n", user.UserName)
	return nil
}

func (a *App) DeleteProfile(ctx context.Context) error {
	answer, err := a.in.Text("Confirm deletion of your profile (yes/no)")
	if err != nil {
		return err
	}
	if answer != "yes" && answer != "y" {
		return nil
	}
	if err := a.ctrl.DeleteProfile(ctx); err != nil {
		return err
	}
	a.lastMovie = nil
	fmt.Fprintln(a.out, "Profile deleted.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.ctrl.Logout()
	a.lastMovie = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func nullable(valid bool, s string) string {
	if !valid {
		return "N/A"
	}
	return s
}

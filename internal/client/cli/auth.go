package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates a new account.
// A successful registration also logs the user in: the API client keeps
// the session token from the response.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Register(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrEmailExists):
			log.Printf("This email is already registered")
		case errors.Is(err, client.ErrInvalidInput):
			log.Printf("Invalid email or password (password must be at least 6 characters)")
		case errors.Is(err, client.ErrUnavailable):
			log.Printf("Server unavailable")
		default:
			log.Printf("Registration unsuccessfull: %s", err.Error())
		}
		return err
	}

	a.userEmail = user.Email
	printlnFn("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrInvalidCredentials):
			log.Printf("Invalid email or password")
		case errors.Is(err, client.ErrUnavailable):
			log.Printf("Server unavailable")
		default:
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	a.userEmail = user.Email
	log.Printf("Login successfull")
	return nil
}

// Logout drops the local session token. The server keeps no session state.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userEmail = ""
	return nil
}

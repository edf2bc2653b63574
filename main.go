// Copyright (c) 2026 The HydroShare Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hydroshare/hs-bulk-create/config"
	"github.com/hydroshare/hs-bulk-create/create"
	"github.com/hydroshare/hs-bulk-create/hydroshare"
	"github.com/hydroshare/hs-bulk-create/journal"
	"github.com/hydroshare/hs-bulk-create/resources"
	"github.com/hydroshare/hs-bulk-create/template"
)

const banner = "--------------------------------------------------"

// command line options
var (
	configFile      string
	authFile        string
	templateFile    string
	address         string
	username        string
	noSSLVerify     bool
	interactiveMode bool
	debugMode       bool
)

// reads console input lines (prompts, confirmations)
var stdin = bufio.NewReader(os.Stdin)

// Prints usage info and exits with the given status.
func usage(status int) {
	fmt.Fprintf(os.Stderr, "%s: HydroShare bulk resource creator tool\n", os.Args[0])
	pflag.PrintDefaults()
	os.Exit(status)
}

// prints the closing banner and exits successfully
func finish() {
	fmt.Printf("\n%s\n", banner)
	fmt.Println("Bulk Resource Creation Complete")
	fmt.Printf("%s\n\n", banner)
	os.Exit(0)
}

// This helper prompts on the console and returns the trimmed reply.
func prompt(text string) string {
	fmt.Print(text)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// This helper reads a password without echoing it.
func promptPassword(text string) string {
	fmt.Print(text)
	bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Panicf("Couldn't read password: %s", err)
	}
	return string(bytes)
}

// Initializes our configuration from the given file, or with defaults if
// no file was specified.
func initConfig() {
	var yamlData []byte
	if configFile != "" {
		log.Printf("Reading configuration from '%s'...", configFile)
		var err error
		yamlData, err = os.ReadFile(configFile)
		if err != nil {
			log.Panicf("Couldn't read %s: %s", configFile, err)
		}
	}
	if err := config.Init(yamlData); err != nil {
		log.Panicf("Couldn't initialize the configuration: %s", err)
	}
}

// Authenticates against the given host, retrying up to the configured
// attempt budget. The password comes from the auth file when one was
// given, and from a console prompt otherwise.
func connect(host string) *hydroshare.Session {
	verifyTLS := config.Service.VerifyTLS && !noSSLVerify

	user := username
	var password string
	if authFile != "" {
		var err error
		user, password, err = hydroshare.ReadAuthFile(authFile)
		if err != nil {
			log.Panicf("Couldn't read credentials from %s: %s", authFile, err)
		}
	} else {
		password = promptPassword("Password:")
	}

	session, err := hydroshare.Authenticate(user, password, host,
		config.Service.AuthAttempts, verifyTLS)
	if err != nil {
		fmt.Println(err.Error())
		finish()
	}
	return session
}

// Collects the host, session, and template path interactively, the way
// the tool behaves when pointed at a terminal with no flags.
func runInteractive() (string, *hydroshare.Session, string) {
	fmt.Println("Interactive Mode")

	host := prompt(fmt.Sprintf("Enter host address (default: %s): ",
		config.Service.Host))
	if host == "" {
		host = config.Service.Host
	}

	verifyTLS := config.Service.VerifyTLS && !noSSLVerify
	var session *hydroshare.Session
	for attempt := 1; ; attempt++ {
		user := prompt("Please enter username: ")
		password := promptPassword("Password:")
		var err error
		session, err = hydroshare.NewSession(user, password, host, verifyTLS)
		if err != nil {
			log.Panicf("Couldn't connect to %s: %s", host, err)
		}
		if _, err = session.UserInfo(); err == nil {
			break
		}
		fmt.Printf("  Authorization Failed - Attempt %d\n", attempt)
		if attempt >= config.Service.AuthAttempts {
			finish()
		}
	}
	fmt.Println("  Authorization Successful")

	var path string
	for {
		path = prompt("Please enter path to template file: ")
		if _, err := os.Stat(path); err == nil {
			break
		}
		fmt.Println("  Could not find template file")
	}
	return host, session, path
}

// Parses and validates the template, printing validation errors for any
// resource that has them. The returned second slice holds the resources
// that failed validation.
func validateTemplate(path string) ([]*resources.Resource, []*resources.Resource) {
	list, err := template.Parse(path)
	if err != nil {
		log.Panicf("Couldn't parse the template: %s", err)
	}
	failed := resources.ValidateAll(list)
	for _, r := range failed {
		fmt.Printf("\nValidation errors for '%s':\n", r.Title)
		r.DisplayErrors(os.Stdout)
	}
	return list, failed
}

// Parses and validates the template and prints a per-resource summary.
func runDebug(path string) {
	fmt.Println("\nRunning in Debug Mode")
	list, _ := validateTemplate(path)
	for _, r := range list {
		r.DisplaySummary(os.Stdout)
	}
	os.Exit(0)
}

// Asks the user whether to proceed despite validation errors. The second
// confirmation is deliberately emphatic and defaults to "no".
func confirmDespiteErrors() bool {
	reply := prompt("Would you like to continue [Y/n]? ")
	if strings.ToLower(reply) == "n" {
		return false
	}
	reply = prompt("  It is not recommended that you proceed with validation " +
		"errors.  Are you sure you want to create HydroShare resources from " +
		"this template [y/N]? ")
	return strings.ToLower(reply) == "y"
}

// records one creation outcome in the journal (best effort)
func journalOutcome(outcome create.Outcome, start time.Time) {
	if !journal.IsOpen() {
		return
	}
	record := journal.Record{
		Id:        uuid.New(),
		Title:     outcome.Title,
		Status:    outcome.Status,
		Error:     outcome.Message,
		StartTime: start,
		StopTime:  start.Add(outcome.Elapsed),
		NumFiles:  outcome.FilesUploaded,
	}
	if !outcome.Pending() {
		record.ResourceId = outcome.Id
	}
	if err := journal.RecordCreation(record); err != nil {
		log.Printf("Couldn't record the creation in the journal: %s", err)
	}
}

// Walks the failures, offering to delete each partially-created remote
// resource. Declining the deletion moves the resource back into the
// created set. A failure with no remote id has nothing to delete.
func resolveFailures(session *hydroshare.Session,
	created map[string]string, failures map[string]create.Failure) {

	fmt.Printf("\n%s\n", banner)
	fmt.Println("The following errors were encountered:")
	fmt.Printf("%s\n\n", banner)
	for id, failure := range failures {
		if strings.HasPrefix(id, "pending-") {
			fmt.Printf("  %s: %s.\n", failure.Title, failure.Error)
			fmt.Println("  No resource was created, so there is nothing to delete.")
			continue
		}
		reply := prompt(fmt.Sprintf("  %s: %s.\nWould you like to delete it [Y/n]?",
			id, failure.Error))
		if strings.ToLower(reply) != "n" {
			fmt.Printf("  deleting resource id=%s...", id)
			if err := session.DeleteResource(id); err != nil {
				fmt.Printf("\n  Couldn't delete %s: %s\n", id, err)
			} else {
				fmt.Println("done")
			}
		} else {
			// not deleted, so the resource exists and counts as created
			created[id] = failure.Title
		}
	}
}

func main() {
	pflag.StringVar(&configFile, "config", "", "service configuration file")
	pflag.StringVar(&authFile, "auth-file", "", "encrypted credentials file")
	pflag.StringVarP(&templateFile, "template", "t", "", "bulk insert template file")
	pflag.StringVarP(&address, "address", "a", "", "hydroshare host address")
	pflag.StringVarP(&username, "user", "u", "", "hydroshare username")
	pflag.BoolVar(&noSSLVerify, "no-ssl-verify", false, "skip TLS certificate verification")
	pflag.BoolVarP(&interactiveMode, "interactive-mode", "i", false, "run in interactive mode")
	pflag.BoolVarP(&debugMode, "debug", "d", false,
		"run in debug mode to check the validity of the template file")
	pflag.Parse()

	initConfig()

	var host string
	var session *hydroshare.Session
	switch {
	case interactiveMode:
		host, session, templateFile = runInteractive()
	case debugMode:
		if templateFile == "" {
			usage(1)
		}
		runDebug(templateFile)
	default:
		if templateFile == "" || address == "" || username == "" {
			fmt.Println("Missing one of the required arguments for " +
				"non-interactive mode: [TEMPLATE], [ADDRESS], [USER]")
			usage(1)
		}
		host = address
	}

	list, failed := validateTemplate(templateFile)
	if len(failed) > 0 {
		if !confirmDespiteErrors() {
			finish()
		}
	}

	// interactive mode authenticated up front; otherwise wait until the
	// template has passed (or the user has overridden) validation
	if session == nil {
		session = connect(host)
	}

	if err := journal.Init(); err != nil {
		log.Printf("Couldn't open the creation journal: %s", err)
	} else {
		defer journal.Finalize()
	}

	fmt.Printf("\n%s\n", banner)
	fmt.Println("Begin creating HydroShare resources")
	fmt.Printf("%s\n", banner)

	created := make(map[string]string)
	failures := make(map[string]create.Failure)
	for _, r := range list {
		start := time.Now()
		outcome := create.CreateResource(session, r)
		journalOutcome(outcome, start)
		if outcome.Status == create.StatusSuccess {
			created[outcome.Id] = outcome.Title
		} else {
			failures[outcome.Id] = create.Failure{
				Error: outcome.Message,
				Title: outcome.Title,
			}
		}
	}

	if len(failures) > 0 {
		resolveFailures(session, created, failures)
	}

	if len(created) > 0 {
		fmt.Printf("\n%s\n", banner)
		fmt.Println("The following resources were created:")
		fmt.Printf("%s\n", banner)
		for id, title := range created {
			fmt.Printf("\n  %s\n  %s\n", title, session.ResourceURL(id))
		}

		path, err := create.WriteManifest(config.Service.DataDirectory,
			session, created)
		if err != nil {
			log.Printf("Couldn't write the run manifest: %s", err)
		} else if path != "" {
			fmt.Printf("\n  Run manifest written to %s\n", path)
		}
	}

	finish()
}

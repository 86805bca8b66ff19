// Package cli provides the redesocial command-line client.
//
// Invoked with a command (for example "posts list") it runs that command once
// and exits; `login` prints the bearer token to pass back with -t or the
// REDESOCIAL_TOKEN variable. Invoked without a command it starts a REPL in
// which the token from `login` is kept for the rest of the session.
//
// Commands:
//
//	register                  create an account
//	login | logout | whoami   manage the session
//	update                    edit the own profile (blank answers keep values)
//	accounts                  list accounts
//	avatar <file>             upload an avatar image
//	posts list                list posts, newest first
//	posts search <fragment>   posts whose title contains fragment
//	posts show <id>           one post
//	posts create              new post (title, then multi-line text)
//	posts edit <id>           replace title and text
//	posts delete <id>         delete a post
package cli

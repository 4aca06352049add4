// Package commands defines the autistnet CLI and wires dependencies for subcommands.
//
// Commands
//
//   - feed           List posts, optionally complaints only
//   - post           Publish a post or a complaint
//   - respond        Attach an official response to a complaint
//   - delete         Delete one of your posts
//   - enhance        Preview an AI-enhanced rewrite of a text
//   - follow         Follow or unfollow an account
//   - following      List followed accounts, from state or the graph mirror
//   - block, report  Send a moderation notice about an account
//   - verify         Request verification of your account
//   - reports        List recent reports held by the moderation relay
//   - transfer       Send coins to another account
//   - wallet         Show balance and ledger, optionally the mirrored balance
//   - reward, story  Earn coins for a video or an inspiring story
//   - gov            Enter or leave government mode
//   - chat           Open, list and write to conversations
//   - ad             Manage sponsored ads
//   - profile        Show or edit a profile; avatar sets the picture
//   - accounts       List the account directory
//   - config         Create or locate the user config file
//
// # Implementation
//
// The root command loads the layered configuration, builds the logger and
// the dependency graph (feed store, snapshot store, notifiers, mirrors)
// before any subcommand runs. Every change is persisted to the home
// directory, so each invocation continues where the last one left off.
package commands

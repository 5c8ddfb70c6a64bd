package bot

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Command is one parsed bot invocation, handed to a feature handler.
type Command struct {
	// Name is the command word after the prefix.
	Name string
	// Args are the remaining arguments, quotes resolved.
	Args []string
	// GuildID, ChannelID and UserID identify where the command came from.
	GuildID   string
	ChannelID string
	UserID    string
	// TraceID correlates all log lines produced while serving the command.
	TraceID string
}

// HandlerFunc serves one command and returns the responses to send.
type HandlerFunc func(ctx context.Context, cmd Command) []Response

type route struct {
	name        string
	usage       string
	description string
	handler     HandlerFunc
}

// Router dispatches parsed commands to registered feature handlers.
type Router struct {
	prefix string
	routes map[string]route
}

// NewRouter creates a router for the given command prefix.
func NewRouter(prefix string) *Router {
	r := &Router{prefix: prefix, routes: make(map[string]route)}
	r.Register("help", "help", "List the available commands", r.help)
	return r
}

// Register binds a command word to a handler. The usage line and
// description feed the built-in help command.
func (r *Router) Register(name, usage, description string, handler HandlerFunc) {
	r.routes[name] = route{name: name, usage: usage, description: description, handler: handler}
}

// Parse splits a raw message into a command, if it is one. The second
// return is false for messages not addressed to the bot.
func (r *Router) Parse(message string) (Command, bool) {
	fields := splitArgs(message)
	if len(fields) == 0 || fields[0] != r.prefix {
		return Command{}, false
	}
	if len(fields) == 1 {
		// Bare prefix reads as a help request.
		return Command{Name: "help"}, true
	}
	return Command{Name: fields[1], Args: fields[2:]}, true
}

// Dispatch runs the handler registered for the command.
func (r *Router) Dispatch(ctx context.Context, cmd Command) []Response {
	rt, ok := r.routes[cmd.Name]
	if !ok {
		return []Response{Errorf("command `%s` not recognised, try `%s help`", cmd.Name, r.prefix)}
	}
	return rt.handler(ctx, cmd)
}

func (r *Router) help(context.Context, Command) []Response {
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)

	embed := discordgo.MessageEmbed{Title: "Commands available", Color: EmbedColor}
	for _, name := range names {
		rt := r.routes[name]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "`" + r.prefix + " " + rt.usage + "`",
			Value: rt.description,
		})
	}
	return []Response{Embed{embed}}
}

// splitArgs splits on whitespace, keeping double-quoted groups together.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campusclone/pkg/api"
	"campusclone/pkg/comments"
	"campusclone/pkg/posts"
	"campusclone/pkg/session"
	"campusclone/pkg/views"

	"go.uber.org/zap"
)

const callTimeout = 30 * time.Second

type cmdHandler func(ctx context.Context, args []string) error

type app struct {
	session *session.Store
	content *posts.Store

	auth    *views.AuthView
	feed    *views.FeedView
	search  *views.SearchView
	post    *views.PostView
	profile *views.ProfileView
	create  *views.CreateView

	cmds map[string]cmdHandler
}

func main() {
	var apiURL, tokenFile string

	flag.StringVar(&apiURL, "api", envOr("CAMPUS_API_URL", "http://localhost:8000"), "backend base URL")
	flag.StringVar(&tokenFile, "token-file", defaultTokenFile(), "path of the persisted credential")
	flag.Parse()

	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync() // flushes buffer, if any
	logger := zapLogger.Sugar()

	out := os.Stdout

	sessionStore := session.NewStore(session.NewFileTokenStore(tokenFile), logger)
	contentStore := posts.NewStore()

	// a 401 anywhere forces a sign-out; the loop lands on the login prompt
	onAuthFailure := func() {
		sessionStore.SignOut()
		fmt.Fprintln(out, "session expired, please sign in again")
	}

	client := api.NewClient(apiURL, sessionStore, onAuthFailure, logger)

	a := &app{
		session: sessionStore,
		content: contentStore,
		auth:    &views.AuthView{API: client, Session: sessionStore, Logger: logger, Out: out},
		feed:    &views.FeedView{API: client, Content: contentStore, Session: sessionStore, Logger: logger, Out: out},
		search:  &views.SearchView{Users: client, Content: contentStore, Logger: logger, Out: out},
		post: &views.PostView{Posts: client, Comments: client, Content: contentStore,
			Session: sessionStore, Thread: comments.NewThread(), Logger: logger, Out: out},
		profile: &views.ProfileView{API: client, Comments: client, Content: contentStore,
			Session: sessionStore, Logger: logger, Out: out},
		create: &views.CreateView{API: client, Users: client, Content: contentStore, Logger: logger, Out: out},
	}
	a.cmds = map[string]cmdHandler{
		"login":    a.login,
		"register": a.register,
		"forgot":   a.forgotPassword,
		"logout":   a.logout,
		"feed":     a.showFeed,
		"open":     a.openPost,
		"like":     a.like,
		"save":     a.save,
		"comment":  a.comment,
		"reply":    a.reply,
		"search":   a.searchPosts,
		"people":   a.searchPeople,
		"whois":    a.whois,
		"new":      a.newPost,
		"delete":   a.deletePost,
		"profile":  a.showProfile,
		"myposts":  a.myPosts,
		"saved":    a.savedPosts,
		"help":     a.help,
	}

	// once per process, before any protected screen
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	err := sessionStore.Restore(ctx, client)
	cancel()
	if err != nil {
		fmt.Fprintln(out, "please sign in (login <username> <password>)")
	}

	a.run(os.Stdin)
}

func (a *app) run(in *os.File) {
	scanner := bufio.NewScanner(in)

	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}

		handler, ok := a.cmds[fields[0]]
		if !ok {
			fmt.Printf("unknown command %q, try help\n> ", fields[0])
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		handler(ctx, fields[1:])
		cancel()

		fmt.Print("> ")
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Println("usage: login <username> <password>")
		return nil
	}

	return a.auth.Login(ctx, &views.LoginForm{Username: &args[0], Password: &args[1]})
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 4 {
		fmt.Println("usage: register <username> <password> <email> <full name>")
		return nil
	}

	name := strings.Join(args[3:], " ")
	form := &views.RegisterForm{
		LoginForm: views.LoginForm{Username: &args[0], Password: &args[1]},
		Email:     &args[2],
		Name:      &name,
	}

	return a.auth.Register(ctx, form)
}

func (a *app) forgotPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("usage: forgot <email>")
		return nil
	}

	return a.auth.ForgotPassword(ctx, args[0])
}

func (a *app) logout(ctx context.Context, args []string) error {
	a.auth.SignOut()
	return nil
}

func (a *app) showFeed(ctx context.Context, args []string) error {
	return a.feed.Mount(ctx)
}

func (a *app) openPost(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("usage: open <post id>")
		return nil
	}

	return a.post.Mount(ctx, args[0])
}

func (a *app) like(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("usage: like <post id>")
		return nil
	}

	return a.feed.Like(ctx, args[0])
}

func (a *app) save(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("usage: save <post id>")
		return nil
	}

	return a.feed.Save(ctx, args[0])
}

func (a *app) comment(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println("usage: comment <text> (on the opened post)")
		return nil
	}

	return a.post.AddComment(ctx, strings.Join(args, " "))
}

func (a *app) reply(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println("usage: reply <comment id> <text>")
		return nil
	}

	return a.post.Reply(ctx, args[0], strings.Join(args[1:], " "))
}

func (a *app) searchPosts(ctx context.Context, args []string) error {
	category := posts.All
	query := ""

	if len(args) > 0 && posts.ValidCategory(posts.Category(args[0])) {
		category = posts.Category(args[0])
		args = args[1:]
	}
	if len(args) > 0 {
		query = strings.Join(args, " ")
	}

	return a.search.Filter(query, category)
}

func (a *app) searchPeople(ctx context.Context, args []string) error {
	// without a query the whole member directory is listed
	return a.search.People(ctx, strings.Join(args, " "))
}

func (a *app) whois(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("usage: whois <user id>")
		return nil
	}

	return a.search.Profile(ctx, args[0])
}

func (a *app) newPost(ctx context.Context, args []string) error {
	// new <category> <title> | <content> [| <tag query> ...]
	joined := strings.Join(args, " ")
	parts := strings.SplitN(joined, "|", 3)
	if len(args) < 2 || len(parts) < 2 {
		fmt.Println("usage: new <category> <title> | <content> [| <tag> ...]")
		return nil
	}

	category := args[0]
	title := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), category))
	content := strings.TrimSpace(parts[1])

	form := &views.CreatePostForm{
		Title:    &title,
		Content:  &content,
		Category: &category,
	}

	if len(parts) == 3 {
		for _, q := range strings.Fields(parts[2]) {
			a.create.Tag(ctx, form, q)
		}
	}

	return a.create.Submit(ctx, form)
}

func (a *app) deletePost(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("usage: delete <post id>")
		return nil
	}

	return a.feed.Delete(ctx, args[0])
}

func (a *app) showProfile(ctx context.Context, args []string) error {
	a.profile.Render()
	return nil
}

func (a *app) myPosts(ctx context.Context, args []string) error {
	return a.profile.MyPosts()
}

func (a *app) savedPosts(ctx context.Context, args []string) error {
	return a.profile.SavedPosts()
}

func (a *app) help(ctx context.Context, args []string) error {
	fmt.Println(`commands:
  login <username> <password>
  register <username> <password> <email> <full name>
  forgot <email>
  logout
  feed
  search [category] [query]
  people [query]
  whois <user id>
  open <post id>
  like | save | delete <post id>
  comment <text>
  reply <comment id> <text>
  new <category> <title> | <content> [| <tag> ...]
  profile
  myposts
  saved
  quit`)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".campusclone-token"
	}

	return filepath.Join(home, ".campusclone", "token")
}

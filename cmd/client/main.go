package main

import (
	"bufio"
	"chat-live/client"
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddr     string        `envconfig:"CHAT_SERVER_ADDR" default:"http://localhost:5000"`
	Email          string        `envconfig:"CHAT_EMAIL" required:"true"`
	Password       string        `envconfig:"CHAT_PASSWORD" required:"true"`
	Colours        bool          `envconfig:"CHAT_COLOURS" default:"true"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"WARN"`
	RequestTimeout time.Duration `envconfig:"CHAT_REQUEST_TIMEOUT" default:"5s"`
}

type terminal struct {
	config Config
	me     chat.User
	api    *client.APIClient
	state  *client.SyncState
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.NewAPIClient(config.ServerAddr, config.RequestTimeout)
	me, err := api.Login(ctx, config.Email, config.Password)
	if err != nil {
		return exitRuntime, fmt.Errorf("login failed: %w", err)
	}

	t := &terminal{config: config, me: me, api: api, state: client.NewSyncState(log, api)}
	if err := t.state.Refresh(ctx); err != nil {
		return exitRuntime, err
	}

	pushURL, err := client.PushURL(config.ServerAddr, me.ID, api.Token())
	if err != nil {
		return exitConfig, err
	}
	listener := client.NewPushListener(log, config.RequestTimeout)
	go func() {
		err := listener.Listen(ctx, pushURL, func(e event.PushEvent) {
			t.state.Handle(ctx, e)
			t.notify(e)
		})
		if err != nil {
			t.print(color.FgRed, fmt.Sprintf("push channel lost: %v", err))
		}
	}()

	t.print(color.FgGreen, fmt.Sprintf("Logged in as %s. Type /help for commands.", me.FullName))
	t.printUsers()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if quit := t.execute(ctx, strings.TrimSpace(line)); quit {
				return exitOK, nil
			}
		}
	}
}

func (t *terminal) execute(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case "":
	case "/quit":
		return true
	case "/help":
		fmt.Println("/users            list users, unseen counts and presence")
		fmt.Println("/open <n|email>   open the thread with a user")
		fmt.Println("/image <path>     send an image to the open thread")
		fmt.Println("/bio <text>       change your bio")
		fmt.Println("/quit             leave")
		fmt.Println("anything else is sent to the open thread")
	case "/users":
		if err := t.state.Refresh(ctx); err != nil {
			t.print(color.FgRed, err.Error())
		}
		t.printUsers()
	case "/open":
		user, ok := t.findUser(arg)
		if !ok {
			t.print(color.FgRed, fmt.Sprintf("no user %q", arg))
			return false
		}
		if err := t.state.Select(ctx, user.ID); err != nil {
			t.print(color.FgRed, err.Error())
			return false
		}
		t.printThread(user)
	case "/image":
		data, err := os.ReadFile(arg)
		if err != nil {
			t.print(color.FgRed, err.Error())
			return false
		}
		uri := fmt.Sprintf("data:%s;base64,%s", mimetype.Detect(data).String(), base64.StdEncoding.EncodeToString(data))
		t.send(ctx, "", uri)
	case "/bio":
		me, err := t.api.UpdateProfile(ctx, "", arg, "")
		if err != nil {
			t.print(color.FgRed, err.Error())
			return false
		}
		t.me = me
		t.print(color.FgGreen, "Bio updated")
	default:
		t.send(ctx, line, "")
	}
	return false
}

func (t *terminal) send(ctx context.Context, text, image string) {
	message, err := t.state.Send(ctx, text, image)
	if err != nil {
		t.print(color.FgRed, err.Error())
		return
	}
	t.print(color.FgGray, fmt.Sprintf("[%s] sent", message.CreatedAt.Local().Format("15:04")))
}

func (t *terminal) notify(e event.PushEvent) {
	switch evt := e.(type) {
	case event.NewMessage:
		view := t.state.View()
		name := t.displayName(evt.Message.SenderID)
		if view.Selected == evt.Message.SenderID {
			t.print(color.FgCyan, fmt.Sprintf("%s: %s", name, describe(evt.Message)))
		} else {
			t.print(color.FgYellow, fmt.Sprintf("new message from %s (%d unseen)", name, view.Unseen[evt.Message.SenderID]))
		}
	case event.MessagesSeen:
		t.print(color.FgGray, fmt.Sprintf("%s has seen %d message(s)", t.displayName(evt.Receipt.ViewerID), len(evt.Receipt.MessageIDs)))
	}
}

func (t *terminal) printUsers() {
	view := t.state.View()
	online := chat.NewPresenceSet(view.Online)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Name", "Email", "Online", "Unseen"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, u := range view.Users {
		status := ""
		if online.Contains(u.ID) {
			status = "●"
		}
		unseen := ""
		if n := view.Unseen[u.ID]; n > 0 {
			unseen = strconv.Itoa(n)
		}
		table.Append([]string{strconv.Itoa(i + 1), u.FullName, u.Email, status, unseen})
	}
	table.Render()
}

func (t *terminal) printThread(with chat.User) {
	t.print(color.FgGreen, "── "+with.FullName+" ──")
	for _, m := range t.state.View().Thread {
		line := fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Local().Format("15:04"), t.displayName(m.SenderID), describe(m))
		if m.SenderID == t.me.ID && m.Seen {
			line += " ✓"
		}
		fmt.Println(line)
	}
}

func (t *terminal) findUser(arg string) (chat.User, bool) {
	users := t.state.View().Users
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(users) {
		return users[n-1], true
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, arg) || u.ID == arg {
			return u, true
		}
	}
	return chat.User{}, false
}

func (t *terminal) displayName(userID string) string {
	if userID == t.me.ID {
		return "you"
	}
	for _, u := range t.state.View().Users {
		if u.ID == userID {
			return u.FullName
		}
	}
	return userID
}

func (t *terminal) print(c color.Color, text string) {
	if t.config.Colours {
		text = color.New(color.BgBlack, c).Render(text)
	}
	fmt.Println(text)
}

func describe(m chat.Message) string {
	if m.Image != "" {
		return strings.TrimSpace(m.Text + " [image " + m.Image + "]")
	}
	return m.Text
}

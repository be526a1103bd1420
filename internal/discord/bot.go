package discord

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/NgigiN/momo/internal/config"
	"github.com/NgigiN/momo/internal/momo"
	"github.com/NgigiN/momo/internal/records"
	"github.com/bwmarrin/discordgo"
)

// listLimit caps how many records a single reply shows.
const listLimit = 10

const usage = "Commands:\n" +
	"!find <id>\n" +
	"!type <Type>\n" +
	"!range <min> <max>\n" +
	"!amount <value>\n" +
	"!summary\n" +
	"!delete <id>\n" +
	"Paste one MoMo SMS per line to record it."

type Bot struct {
	session   *discordgo.Session
	engine    *records.Engine
	channelID string
	owner     string
}

func NewBot(cfg config.DiscordConfig, engine *records.Engine) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:   session,
		engine:    engine,
		channelID: cfg.ChannelID,
		owner:     cfg.Owner,
	}

	session.AddHandler(bot.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return //bot's messages
	}

	if m.ChannelID != b.channelID {
		return //specific to the channel
	}

	reply := b.reply(m.Content)
	if reply == "" {
		return
	}
	s.ChannelMessageSend(m.ChannelID, reply)
}

// reply computes the bot's answer to a channel message.
func (b *Bot) reply(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if strings.HasPrefix(content, "!") {
		return b.handleCommand(strings.Fields(content))
	}

	lines := nonEmptyLines(content)
	if len(lines) > 1 {
		return b.ingestBatch(lines)
	}
	return b.ingest(lines[0])
}

func nonEmptyLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (b *Bot) ingest(msg string) string {
	tx, err := b.record(msg)
	if err != nil {
		return fmt.Sprintf("Invalid MoMo message: %v", err)
	}
	return fmt.Sprintf("Tracked #%d: %s %s to %s", tx.ID, money(tx), tx.Type, tx.Receiver)
}

func (b *Bot) record(msg string) (records.Transaction, error) {
	parsed, err := momo.ParseMessage(msg)
	if err != nil {
		return records.Transaction{}, err
	}
	return b.engine.Store().Create(parsed.ToPayload(b.owner))
}

func (b *Bot) ingestBatch(lines []string) string {
	var failures []string
	success := 0
	for i, line := range lines {
		if _, err := b.record(line); err != nil {
			failures = append(failures, fmt.Sprintf("Transaction %d: %v", i+1, err))
			continue
		}
		success++
	}

	var sb strings.Builder
	sb.WriteString("**Batch Processing Complete**\n")
	fmt.Fprintf(&sb, "Successfully processed: %d transactions\n", success)
	if len(failures) > 0 {
		fmt.Fprintf(&sb, "Failed: %d transactions\n", len(failures))
		for _, f := range failures {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	return sb.String()
}

func (b *Bot) handleCommand(args []string) string {
	switch args[0] {
	case "!find":
		id, err := singleID(args)
		if err != nil {
			return err.Error()
		}
		tx, err := b.engine.LookupByID(id)
		if err != nil {
			return fmt.Sprintf("Transaction #%d not found", id)
		}
		return formatTransaction(tx)
	case "!delete":
		id, err := singleID(args)
		if err != nil {
			return err.Error()
		}
		tx, err := b.engine.Store().Delete(id)
		if err != nil {
			return fmt.Sprintf("Transaction #%d not found", id)
		}
		return fmt.Sprintf("Deleted #%d (%s %s)", tx.ID, money(tx), tx.Type)
	case "!type":
		if len(args) != 2 {
			return "Usage: !type <Type>"
		}
		return formatList("Type "+args[1], b.engine.LinearScanByType(args[1]))
	case "!range":
		if len(args) != 3 {
			return "Usage: !range <min> <max>"
		}
		lo, errLo := strconv.ParseFloat(args[1], 64)
		hi, errHi := strconv.ParseFloat(args[2], 64)
		if errLo != nil || errHi != nil {
			return "Usage: !range <min> <max>"
		}
		return formatList(fmt.Sprintf("Amounts %.2f - %.2f", lo, hi), b.engine.LinearScanByAmountRange(lo, hi))
	case "!amount":
		if len(args) != 2 {
			return "Usage: !amount <value>"
		}
		target, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "Usage: !amount <value>"
		}
		return formatList(fmt.Sprintf("Amount %.2f", target), b.engine.BinarySearchByAmount(target))
	case "!summary":
		return b.summary()
	default:
		return usage
	}
}

func singleID(args []string) (int, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("Usage: %s <id>", args[0])
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("Invalid transaction ID: %s", args[1])
	}
	return id, nil
}

func (b *Bot) summary() string {
	txs := b.engine.Store().Snapshot()
	if len(txs) == 0 {
		return "No transactions found."
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	var types []string
	for _, tx := range txs {
		if _, seen := totals[tx.Type]; !seen {
			types = append(types, tx.Type)
		}
		totals[tx.Type] += tx.Amount
		counts[tx.Type]++
	}
	slices.Sort(types)

	var sb strings.Builder
	sb.WriteString("**Transaction Summary**\n\n")
	var total float64
	for _, t := range types {
		fmt.Fprintf(&sb, "**%s**: %.2f RWF (%d)\n", t, totals[t], counts[t])
		total += totals[t]
	}
	fmt.Fprintf(&sb, "\n**Total**: %.2f RWF (%d transactions)", total, len(txs))
	return sb.String()
}

func money(tx records.Transaction) string {
	return fmt.Sprintf("%.2f %s", tx.Amount, tx.Currency)
}

func formatTransaction(tx records.Transaction) string {
	return fmt.Sprintf("**#%d** %s %s\n  %s -> %s\n  %s %s",
		tx.ID, tx.Type, money(tx), tx.Sender, tx.Receiver, tx.Timestamp, tx.Status)
}

func formatList(title string, txs []records.Transaction) string {
	if len(txs) == 0 {
		return fmt.Sprintf("No transactions found for %s", title)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", title)

	limit := min(len(txs), listLimit)
	for _, tx := range txs[:limit] {
		sb.WriteString(formatTransaction(tx))
		sb.WriteString("\n")
	}
	if len(txs) > limit {
		fmt.Fprintf(&sb, "... and %d more transactions\n", len(txs)-limit)
	}
	return sb.String()
}

package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/web3guy0/polycopy/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// DISPLAY - Styled console output + plain-text daily file mirror
// ═══════════════════════════════════════════════════════════════════════════════
//
// Every print also appends a color-stripped copy to logs/bot-<date>.log.
// The file path is best-effort: any I/O error is swallowed so the display
// layer can never take down the bot.
//
// ═══════════════════════════════════════════════════════════════════════════════

const (
	headerWidth = 70

	myPositionsTitleLimit      = 45
	tradersPositionsTitleLimit = 40
)

var (
	cyan        = color.New(color.FgCyan).SprintFunc()
	cyanBold    = color.New(color.FgCyan, color.Bold).SprintFunc()
	blue        = color.New(color.FgBlue).SprintFunc()
	green       = color.New(color.FgGreen).SprintFunc()
	greenBold   = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow      = color.New(color.FgYellow).SprintFunc()
	yellowBold  = color.New(color.FgYellow, color.Bold).SprintFunc()
	red         = color.New(color.FgRed).SprintFunc()
	redBold     = color.New(color.FgRed, color.Bold).SprintFunc()
	magenta     = color.New(color.FgMagenta).SprintFunc()
	magentaBold = color.New(color.FgMagenta, color.Bold).SprintFunc()
	white       = color.New(color.FgWhite).SprintFunc()
	whiteBold   = color.New(color.FgWhite, color.Bold).SprintFunc()
	dim         = color.New(color.Faint).SprintFunc()
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

var spinnerFrames = []string{"⏳", "⌛", "⏳"}

// Display renders styled console output and mirrors it to a daily log file.
// Construct one per process and share the handle; the spinner index is the
// only mutable state.
type Display struct {
	out     io.Writer
	logsDir string
	now     func() time.Time

	spinnerIdx int
}

// New creates a Display writing to stdout and logs/.
func New() *Display {
	return NewAt("logs")
}

// NewAt creates a Display mirroring to the given logs directory.
func NewAt(logsDir string) *Display {
	return &Display{
		out:     os.Stdout,
		logsDir: logsDir,
		now:     time.Now,
	}
}

// StripANSI removes color/style escape codes for file logging.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// FormatAddress shortens an address for display: 0x1234...abcd.
func FormatAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// MaskAddress hides the middle of an address for privacy.
func MaskAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + strings.Repeat("*", 34) + address[len(address)-4:]
}

func (d *Display) logFileName() string {
	return filepath.Join(d.logsDir, fmt.Sprintf("bot-%s.log", d.now().Format("2006-01-02")))
}

// writeToFile appends a plain entry to the daily log. Fire-and-forget:
// console output is authoritative, so every error here is discarded.
func (d *Display) writeToFile(message string) {
	if err := os.MkdirAll(d.logsDir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(d.logFileName(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] %s\n", d.now().Format(time.RFC3339), StripANSI(message))
}

// Header prints a section header.
func (d *Display) Header(title string) {
	line := strings.Repeat("━", headerWidth)
	fmt.Fprintf(d.out, "\n%s\n", cyan(line))
	fmt.Fprintf(d.out, "%s\n", cyanBold("  "+title))
	fmt.Fprintf(d.out, "%s\n\n", cyan(line))
	d.writeToFile("HEADER: " + title)
}

// Info prints an informational message.
func (d *Display) Info(message string) {
	fmt.Fprintf(d.out, "%s\n", blue("ℹ "+message))
	d.writeToFile("INFO: " + message)
}

// Success prints a success message.
func (d *Display) Success(message string) {
	fmt.Fprintf(d.out, "%s\n", green("✓ "+message))
	d.writeToFile("SUCCESS: " + message)
}

// Warning prints a warning message.
func (d *Display) Warning(message string) {
	fmt.Fprintf(d.out, "%s\n", yellow("⚠ "+message))
	d.writeToFile("WARNING: " + message)
}

// Error prints an error message.
func (d *Display) Error(message string) {
	fmt.Fprintf(d.out, "%s\n", red("✗ "+message))
	d.writeToFile("ERROR: " + message)
}

// Trade renders a trade card for a detected trade. Absent detail fields
// are skipped, no field is required.
func (d *Display) Trade(traderAddress, action string, details types.TradeDetails) {
	line := strings.Repeat("─", headerWidth)

	fmt.Fprintf(d.out, "\n%s\n", magenta(line))
	fmt.Fprintf(d.out, "%s\n", magentaBold("📊 NEW TRADE DETECTED"))
	fmt.Fprintf(d.out, "%s\n", white("Trader: "+FormatAddress(traderAddress)))
	fmt.Fprintf(d.out, "%s%s\n", white("Action: "), whiteBold(action))

	if details.Asset != "" {
		fmt.Fprintf(d.out, "%s\n", white("Asset:  "+FormatAddress(details.Asset)))
	}
	if details.Side != "" {
		sideColor := redBold
		if details.Side == "BUY" {
			sideColor = greenBold
		}
		fmt.Fprintf(d.out, "%s%s\n", white("Side:   "), sideColor(details.Side))
	}
	if !details.Amount.IsZero() {
		fmt.Fprintf(d.out, "%s%s\n", white("Amount: "), yellow("$"+details.Amount.String()))
	}
	if !details.Price.IsZero() {
		fmt.Fprintf(d.out, "%s%s\n", white("Price:  "), cyan(details.Price.String()))
	}
	if slug := details.MarketSlug(); slug != "" {
		fmt.Fprintf(d.out, "%s%s\n", white("Market: "), blue("https://polymarket.com/event/"+slug))
	}
	if details.TransactionHash != "" {
		fmt.Fprintf(d.out, "%s%s\n", white("TX:     "), blue("https://polygonscan.com/tx/"+details.TransactionHash))
	}
	fmt.Fprintf(d.out, "%s\n\n", magenta(line))

	entry := fmt.Sprintf("TRADE: %s - %s", FormatAddress(traderAddress), action)
	if details.Side != "" {
		entry += " | Side: " + details.Side
	}
	if !details.Amount.IsZero() {
		entry += " | Amount: $" + details.Amount.String()
	}
	if !details.Price.IsZero() {
		entry += " | Price: " + details.Price.String()
	}
	if details.Title != "" {
		entry += " | Market: " + details.Title
	}
	if details.TransactionHash != "" {
		entry += " | TX: " + details.TransactionHash
	}
	d.writeToFile(entry)
}

// Balance prints your capital next to the copied trader's.
func (d *Display) Balance(myBalance, traderBalance decimal.Decimal, traderAddress string) {
	fmt.Fprintf(d.out, "%s\n", white("Capital (USDC + Positions):"))
	fmt.Fprintf(d.out, "%s%s\n", white("  Your total capital:   "), greenBold("$"+myBalance.StringFixed(2)))
	fmt.Fprintf(d.out, "%s%s\n", white("  Trader total capital: "),
		color.New(color.FgBlue, color.Bold).Sprintf("$%s (%s)", traderBalance.StringFixed(2), FormatAddress(traderAddress)))
}

// OrderResult prints the outcome of a copied order.
func (d *Display) OrderResult(ok bool, message string) {
	if ok {
		fmt.Fprintf(d.out, "%s %s\n", green("✓"), greenBold("Order executed: "+message))
		d.writeToFile("ORDER SUCCESS: " + message)
	} else {
		fmt.Fprintf(d.out, "%s %s\n", red("✗"), redBold("Order failed: "+message))
		d.writeToFile("ORDER FAILED: " + message)
	}
}

// Separator prints a dim horizontal rule.
func (d *Display) Separator() {
	fmt.Fprintf(d.out, "%s\n", dim(strings.Repeat("─", headerWidth)))
}

// Waiting prints a transient spinner line terminated by a carriage return
// so the next call overwrites it in place. Not mirrored to file.
func (d *Display) Waiting(traderCount int, extraInfo string) {
	timestamp := d.now().Format("15:04:05")
	spinner := spinnerFrames[d.spinnerIdx%len(spinnerFrames)]
	d.spinnerIdx++

	message := fmt.Sprintf("%s Waiting for trades from %d trader(s)...", spinner, traderCount)
	if extraInfo != "" {
		message += fmt.Sprintf(" (%s)", extraInfo)
	}

	fmt.Fprintf(d.out, "%s %s  \r", dim("["+timestamp+"]"), cyan(message))
}

// ClearLine wipes the current transient line.
func (d *Display) ClearLine() {
	fmt.Fprint(d.out, "\r"+strings.Repeat(" ", 100)+"\r")
}

// DBConnection prints per-trader stored trade counts. Rows are emitted for
// each trader; a missing count renders as zero.
func (d *Display) DBConnection(traders []string, counts []int) {
	fmt.Fprintf(d.out, "\n%s\n", cyan("📦 Database Status:"))
	for i, address := range traders {
		count := 0
		if i < len(counts) {
			count = counts[i]
		}
		fmt.Fprintf(d.out, "%s%s\n", white("   "+FormatAddress(address)+": "), yellow(fmt.Sprintf("%d trades", count)))
	}
	fmt.Fprintln(d.out)
}

// Startup prints the banner, tracked traders and the masked wallet.
// Not mirrored to file.
func (d *Display) Startup(traders []string, myWallet string) {
	fmt.Fprint(d.out, "\n\n")
	d.banner()

	fmt.Fprintf(d.out, "%s\n", cyan("📊 Tracking Traders:"))
	for i, address := range traders {
		fmt.Fprintf(d.out, "%s\n", white(fmt.Sprintf("   %d. %s", i+1, address)))
	}
	fmt.Fprintf(d.out, "\n%s\n", cyan("💼 Your Wallet:"))
	fmt.Fprintf(d.out, "%s\n\n", white("   "+MaskAddress(myWallet)))
}

func (d *Display) banner() {
	const innerWidth = 66
	blank := strings.Repeat(" ", innerWidth)
	row := func(content string) {
		fmt.Fprintf(d.out, "%s%s%s\n", cyanBold("║"), content, cyanBold("║"))
	}

	art := []string{
		`            ____       _        ____                              `,
		`           |  _ \ ___ | |_   _ / ___|___  _ __  _   _             `,
		`           | |_) / _ \| | | | | |   / _ \| '_ \| | | |            `,
		`           |  __/ (_) | | |_| | |__| (_) | |_) | |_| |            `,
		`           |_|   \___/|_|\__, |\____\___/| .__/ \__, |            `,
		`                         |___/           |_|    |___/             `,
	}

	fmt.Fprintf(d.out, "%s\n", cyanBold("╔"+strings.Repeat("═", innerWidth)+"╗"))
	row(blank)
	for _, line := range art {
		row(cyanBold(line))
	}
	row(blank)
	row(strings.Repeat(" ", 27) + cyanBold("╭─────────╮") + strings.Repeat(" ", 28))
	row(strings.Repeat(" ", 27) + cyanBold("│") + whiteBold("    V3   ") + cyanBold("│") + strings.Repeat(" ", 28))
	row(strings.Repeat(" ", 27) + cyanBold("╰─────────╯") + strings.Repeat(" ", 28))
	row(blank)
	row(strings.Repeat(" ", 14) + yellowBold("⚡ Copy the best, automate success ⚡") + strings.Repeat(" ", 16))
	row(blank)
	fmt.Fprintf(d.out, "%s\n", cyanBold("╚"+strings.Repeat("═", innerWidth)+"╝"))
	fmt.Fprintf(d.out, "%s\n\n\n", cyanBold(strings.Repeat("━", 68)))
}

// MyPositions prints the portfolio report for our own wallet.
func (d *Display) MyPositions(wallet string, count int, topPositions []types.DisplayPosition,
	overallPnl float64, totalValue, initialValue, currentBalance decimal.Decimal) {

	fmt.Fprintf(d.out, "\n%s\n", magentaBold("💼 YOUR POSITIONS"))
	fmt.Fprintf(d.out, "%s\n\n", white("   Wallet: "+FormatAddress(wallet)))

	totalPortfolio := currentBalance.Add(totalValue)
	fmt.Fprintf(d.out, "%s%s\n", white("   💰 Available Cash:    "), yellowBold("$"+currentBalance.StringFixed(2)))
	fmt.Fprintf(d.out, "%s%s\n", white("   📊 Total Portfolio:   "), cyanBold("$"+totalPortfolio.StringFixed(2)))

	if count == 0 {
		fmt.Fprintf(d.out, "\n%s\n", white("   No open positions"))
	} else {
		plural := ""
		if count > 1 {
			plural = "s"
		}
		fmt.Fprintln(d.out)
		fmt.Fprintf(d.out, "%s%s\n", white("   📈 Open Positions:    "), green(fmt.Sprintf("%d position%s", count, plural)))
		fmt.Fprintf(d.out, "%s%s\n", white("      Invested:          "), white("$"+initialValue.StringFixed(2)))
		fmt.Fprintf(d.out, "%s%s\n", white("      Current Value:     "), cyan("$"+totalValue.StringFixed(2)))
		fmt.Fprintf(d.out, "%s%s\n", white("      Profit/Loss:       "), formatPnl(overallPnl))

		if len(topPositions) > 0 {
			fmt.Fprintf(d.out, "\n%s\n", white("   🔝 Top Positions:"))
			for _, pos := range topPositions {
				d.positionLines(pos, myPositionsTitleLimit, "      ")
			}
		}
	}
	fmt.Fprintln(d.out)
}

// TradersPositions prints the per-trader position summary. Counts, details
// and profitabilities are positional and optional: indexes past the end of
// any of them are treated as absent rather than an error.
func (d *Display) TradersPositions(traders []string, positionCounts []int,
	positionDetails [][]types.DisplayPosition, profitabilities []float64) {

	fmt.Fprintf(d.out, "\n%s\n", cyan("📈 TRADERS YOU'RE COPYING"))
	for i, address := range traders {
		count := 0
		if i < len(positionCounts) {
			count = positionCounts[i]
		}

		countStr := white("0 positions")
		if count > 0 {
			plural := ""
			if count > 1 {
				plural = "s"
			}
			countStr = green(fmt.Sprintf("%d position%s", count, plural))
		}

		profitStr := ""
		if i < len(profitabilities) && count > 0 {
			profitStr = " | " + formatPnl(profitabilities[i])
		}

		fmt.Fprintf(d.out, "%s%s%s\n", white("   "+FormatAddress(address)+": "), countStr, profitStr)

		if i < len(positionDetails) {
			for _, pos := range positionDetails[i] {
				d.positionLines(pos, tradersPositionsTitleLimit, "      ")
			}
		}
	}
	fmt.Fprintln(d.out)
}

func (d *Display) positionLines(pos types.DisplayPosition, titleLimit int, indent string) {
	title := truncate(pos.Title, titleLimit)
	cents := decimal.NewFromInt(100)

	fmt.Fprintf(d.out, "%s\n", white(fmt.Sprintf("%s• %s - %s", indent, pos.Outcome, title)))
	fmt.Fprintf(d.out, "%s%s%s%s\n",
		white(indent+"  Value: "), cyan("$"+pos.CurrentValue.StringFixed(2)),
		white(" | PnL: "), formatPnl(pos.PercentPnl))
	fmt.Fprintf(d.out, "%s%s%s%s\n",
		white(indent+"  Bought @ "), yellow(pos.AvgPrice.Mul(cents).StringFixed(1)+"¢"),
		white(" | Current @ "), yellow(pos.CurPrice.Mul(cents).StringFixed(1)+"¢"))
}

// formatPnl renders a signed percentage, green for gains and red for losses.
func formatPnl(pnl float64) string {
	if pnl >= 0 {
		return greenBold(fmt.Sprintf("+%.1f%%", pnl))
	}
	return redBold(fmt.Sprintf("%.1f%%", pnl))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

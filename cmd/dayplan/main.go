package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	bpaf "github.com/pacak/bpaf-sub000"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))
	verbStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type event struct {
	verb   string
	detail string
}

type dayOpts struct {
	name    string
	verbose int
	events  []event
}

func eatCommand() *bpaf.CmdParser[event] {
	sub, err := bpaf.ToOptions(bpaf.Map(
		bpaf.Positional("MEAL").Help("what to eat"),
		func(meal string) event { return event{verb: "eat", detail: meal} },
	))
	if err != nil {
		panic(err)
	}
	return bpaf.Command("eat", "eat something", sub).Adjacent()
}

func drinkCommand() *bpaf.CmdParser[event] {
	sub, err := bpaf.ToOptions(bpaf.Map(
		bpaf.Fallback(bpaf.Long("coffee").Help("take coffee instead of water").Switch(), false),
		func(coffee bool) event {
			if coffee {
				return event{verb: "drink", detail: "coffee"}
			}
			return event{verb: "drink", detail: "water"}
		},
	))
	if err != nil {
		panic(err)
	}
	return bpaf.Command("drink", "drink something", sub).Adjacent()
}

func sleepCommand() *bpaf.CmdParser[event] {
	hours := bpaf.ParseWith(
		bpaf.Long("time").Help("how many hours").Argument("HOURS"),
		func(s string) (int, error) { return strconv.Atoi(s) },
	)
	sub, err := bpaf.ToOptions(bpaf.Map(hours, func(h int) event {
		return event{verb: "sleep", detail: fmt.Sprintf("%d hours", h)}
	}))
	if err != nil {
		panic(err)
	}
	return bpaf.Command("sleep", "sleep for a while", sub).Adjacent()
}

func dayOptions() *bpaf.OptionParser[dayOpts] {
	name := bpaf.Fallback(
		bpaf.Long("name").Short('n').Env("DAYPLAN_NAME").Help("whose day this is").Argument("NAME"),
		"you",
	)
	verbose := bpaf.Count(bpaf.ReqFlag(
		bpaf.Long("verbose").Short('v').Help("print more detail, repeatable"),
		true,
	))
	events := bpaf.Many(bpaf.First(
		bpaf.Parser[event](eatCommand()),
		bpaf.Parser[event](drinkCommand()),
		bpaf.Parser[event](sleepCommand()),
	))

	op, err := bpaf.ToOptions(
		bpaf.Construct3(name, verbose, events,
			func(n string, v int, evs []event) dayOpts {
				return dayOpts{name: n, verbose: v, events: evs}
			}),
		bpaf.OptionDescription("dayplan lays out a day as a chain of commands"),
		bpaf.OptionVersion("0.1.0"),
	)
	if err != nil {
		panic(err)
	}
	return op
}

func main() {
	opts := dayOptions().Run()

	fmt.Println(titleStyle.Render(fmt.Sprintf("A day in the life of %s", opts.name)))
	if len(opts.events) == 0 {
		fmt.Println(noteStyle.Render("nothing planned, lucky them"))
		return
	}
	for i, ev := range opts.events {
		line := verbStyle.Render(ev.verb) + " " + detailStyle.Render(ev.detail)
		if opts.verbose > 0 {
			line = noteStyle.Render(fmt.Sprintf("%2d. ", i+1)) + line
		}
		fmt.Println(line)
	}
	if opts.verbose > 1 {
		fmt.Println(noteStyle.Render(fmt.Sprintf("%d events planned", len(opts.events))))
	}
}

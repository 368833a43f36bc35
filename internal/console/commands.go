package console

// Command describes one console command
type Command struct {
	Name        string
	Usage       string
	Description string
}

// Commands lists every console command in help order
var Commands = []Command{
	{Name: "help", Description: "List commands"},
	{Name: "balance", Description: "Show balance, bet and equipped cosmetics"},
	{Name: "bet", Usage: "<amount>", Description: "Choose the stake: 1, 5, 10, 25, 100 or 500"},
	{Name: "bonus", Description: "Show today's bonus and the weekly calendar"},
	{Name: "slots", Description: "Spin the reels"},
	{Name: "blackjack", Description: "Deal a blackjack hand"},
	{Name: "hit", Description: "Take a card in blackjack"},
	{Name: "stand", Description: "Stand in blackjack"},
	{Name: "roulette", Usage: "<0-36>", Description: "Bet straight up on a number"},
	{Name: "hilo", Description: "Turn a hi-lo base card"},
	{Name: "guess", Usage: "<hi|lo>", Description: "Call the next hi-lo card"},
	{Name: "flip", Usage: "<heads|tails>", Description: "Toss the coin"},
	{Name: "holdem", Description: "Deal a hold'em hand"},
	{Name: "next", Description: "Reveal the next hold'em street"},
	{Name: "plinko", Description: "Drop a plinko ball"},
	{Name: "daily", Description: "Claim the daily bonus"},
	{Name: "friday", Description: "Claim Friday Fortune"},
	{Name: "shop", Description: "List the cosmetic shop"},
	{Name: "buy", Usage: "<item>", Description: "Buy and equip a cosmetic"},
	{Name: "equip", Usage: "<item>", Description: "Equip an owned cosmetic"},
	{Name: "history", Description: "Show recent rounds"},
	{Name: "stats", Description: "Show per-game results"},
	{Name: "reset", Description: "Start over with a fresh profile"},
	{Name: "quit", Description: "Save and leave the floor"},
}

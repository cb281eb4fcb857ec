package optvizslack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bcdannyboy/optviz/models"
	"github.com/bcdannyboy/optviz/pricing"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

const greeksUsage = "Usage: /greeks <S> <K> <T> <r> <sigma>"

type GreeksHandler struct{}

func NewGreeksHandler() *GreeksHandler {
	return &GreeksHandler{}
}

func (h *GreeksHandler) HandleCommand(evt *socketmode.Event, client *socketmode.Client) error {
	data := evt.Data.(slack.SlashCommand)

	params, err := parseGreeksArgs(data.Text)
	if err != nil {
		_, _, perr := client.PostMessage(data.ChannelID,
			slack.MsgOptionText(err.Error(), false))
		return perr
	}

	callResult, err := pricing.Calculate(params)
	if err != nil {
		_, _, perr := client.PostMessage(data.ChannelID,
			slack.MsgOptionText(fmt.Sprintf("Pricing failed: %s", err), false))
		return perr
	}

	params.Type = models.Put
	putResult, err := pricing.Calculate(params)
	if err != nil {
		_, _, perr := client.PostMessage(data.ChannelID,
			slack.MsgOptionText(fmt.Sprintf("Pricing failed: %s", err), false))
		return perr
	}

	msg := formatGreeks(callResult, putResult)
	_, _, err = client.PostMessage(data.ChannelID, slack.MsgOptionText(msg, false))
	return err
}

// parseGreeksArgs parses the slash-command text into pricing parameters.
// Exactly five numeric arguments are required; the returned params carry
// the Call variant, callers flip to Put for the second leg.
func parseGreeksArgs(text string) (models.OptionParams, error) {
	args := strings.Fields(text)
	if len(args) != 5 {
		return models.OptionParams{}, fmt.Errorf("invalid number of arguments. %s", greeksUsage)
	}

	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return models.OptionParams{}, fmt.Errorf("could not parse %q as a number. %s", arg, greeksUsage)
		}
		values[i] = v
	}

	return models.OptionParams{
		UnderlyingPrice: values[0],
		Strike:          values[1],
		TimeToExpiry:    values[2],
		RiskFreeRate:    values[3],
		Volatility:      values[4],
		Type:            models.Call,
	}, nil
}

func formatGreeks(call, put models.GreeksResult) string {
	return fmt.Sprintf(
		"Call: price %.2f | delta %.4f | gamma %.4f | theta %.4f | vega %.4f | rho %.4f\n"+
			"Put:  price %.2f | delta %.4f | gamma %.4f | theta %.4f | vega %.4f | rho %.4f",
		call.Price, call.Delta, call.Gamma, call.Theta, call.Vega, call.Rho,
		put.Price, put.Delta, put.Gamma, put.Theta, put.Vega, put.Rho)
}

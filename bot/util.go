package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

func ParseSnowflake(id string) (time.Time, error) {
	n, err := strconv.ParseInt(id, 0, 63)
	if err != nil {
		return time.Now(), err
	}
	return time.Unix(((n>>22)+1420070400000)/1000, 0), nil
}

func AddEmbedField(e *discordgo.MessageEmbed, name, value string, inline bool) *discordgo.MessageEmbed {
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline})
	return e
}

func SetEmbedThumbnail(e *discordgo.MessageEmbed, url string) *discordgo.MessageEmbed {
	e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
	return e
}

// FormatUptime renders d as days, hours, minutes and seconds, e.g. 1d2h3m4s.
func FormatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	return fmt.Sprintf("%dd%dh%dm%ds", days, hours, secs/60, secs%60)
}

func hasPermissions(have, want int64) bool {
	if have&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return have&want == want
}

// findMemberByPrefix returns the first member whose nickname or username
// starts with name, ignoring case.
func findMemberByPrefix(members []*discordgo.Member, name string) *discordgo.Member {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	for _, m := range members {
		if m.User == nil {
			continue
		}
		if m.Nick != "" && strings.HasPrefix(strings.ToLower(m.Nick), name) {
			return m
		}
		if strings.HasPrefix(strings.ToLower(m.User.Username), name) {
			return m
		}
	}
	return nil
}

func inviteURL(appID string, permissions int64) string {
	return fmt.Sprintf("https://discord.com/oauth2/authorize?client_id=%v&scope=bot&permissions=%v", appID, permissions)
}

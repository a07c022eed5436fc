package discord

import "github.com/bwmarrin/discordgo"

func (d *Discord) Guild(gid string) (*discordgo.Guild, error) {
	for _, s := range d.sessions {
		if g, err := s.State.Guild(gid); err == nil {
			return g, nil
		}
	}
	return nil, discordgo.ErrStateNotFound
}

func (d *Discord) Member(gid, uid string) (*discordgo.Member, error) {
	for _, s := range d.sessions {
		if m, err := s.State.Member(gid, uid); err == nil {
			return m, nil
		}
	}
	return nil, discordgo.ErrStateNotFound
}

func (d *Discord) Channel(cid string) (*discordgo.Channel, error) {
	for _, s := range d.sessions {
		if ch, err := s.State.Channel(cid); err == nil {
			return ch, nil
		}
	}
	return nil, discordgo.ErrStateNotFound
}

// UserChannelPermissions resolves the permissions of a user in a channel from
// whichever shard holds the guild.
func (d *Discord) UserChannelPermissions(uid, cid string) (int64, error) {
	for _, s := range d.sessions {
		if p, err := s.State.UserChannelPermissions(uid, cid); err == nil {
			return p, nil
		}
	}
	return 0, discordgo.ErrStateNotFound
}

// GuildCount sums the guilds cached by every shard.
func (d *Discord) GuildCount() int {
	n := 0
	for _, s := range d.sessions {
		s.State.RLock()
		n += len(s.State.Guilds)
		s.State.RUnlock()
	}
	return n
}

func (d *Discord) PrivateChannelCount() int {
	n := 0
	for _, s := range d.sessions {
		s.State.RLock()
		n += len(s.State.PrivateChannels)
		s.State.RUnlock()
	}
	return n
}

// UpdateStatus sends the same presence on every shard and returns the first
// error after trying all of them.
func (d *Discord) UpdateStatus(data discordgo.UpdateStatusData) error {
	var first error
	for _, s := range d.sessions {
		if err := s.UpdateStatusComplex(data); err != nil && first == nil {
			first = err
		}
	}
	return first
}

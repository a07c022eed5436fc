package bot

func (b *Bot) registerCommands() error {
	interval := b.config.AniListInterval
	if interval <= 0 {
		interval = defaultAniListInterval
	}
	b.router.AddBucket("anilist", interval, 1)

	return b.router.Register(
		newAboutCommand(b),
		newAvatarCommand(b),
		newUserInfoCommand(b),
		newGuildInfoCommand(b),
		newPingCommand(b),
		newHelpCommand(b),

		newEightBallCommand(b),
		newDarkSoulsCommand(b),
		newDarkSouls3Command(b),
		newDDateCommand(b),

		newSetPrefixCommand(b),

		newBanCommand(b),
		newUnbanCommand(b),
		newSetSlowmodeCommand(b),

		newInfoCommand(b),
		newReloadCommand(b),
		newNicknameCommand(b),
		newPresenceCommand(b),

		newAnimeCommand(b),
		newMangaCommand(b),
		newVTuberCommand(b),
	)
}

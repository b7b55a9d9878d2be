package res

const (
	AppName       = "torriplayer"
	DisplayName   = "Torriplayer"
	AppVersion    = "0.1.0"
	AppVersionTag = "v" + AppVersion
	GithubURL     = "https://github.com/torriplayer/torriplayer"
)

package peerseek

// Version is the peerseek release version.
const Version = "0.1.0"

// UserAgent identifies this tool to remote peers during the identify
// exchange, matching the libp2p convention of name/version.
const UserAgent = "peerseek/" + Version

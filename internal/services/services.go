// Package services maps well-known port numbers to IANA service names.
// The table is built once and is safe for unsynchronized concurrent reads.
package services

// wellKnown is a best-effort guess based on IANA port registrations. The
// actual service behind a port may differ (e.g., a web server on 8080).
var wellKnown = map[int]string{
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "domain",
	67:    "dhcps",
	68:    "dhcpc",
	69:    "tftp",
	80:    "http",
	110:   "pop3",
	111:   "rpcbind",
	123:   "ntp",
	135:   "msrpc",
	137:   "netbios-ns",
	138:   "netbios-dgm",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	179:   "bgp",
	389:   "ldap",
	443:   "https",
	445:   "microsoft-ds",
	465:   "smtps",
	500:   "isakmp",
	514:   "syslog",
	554:   "rtsp",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1433:  "ms-sql-s",
	1521:  "oracle",
	1723:  "pptp",
	2049:  "nfs",
	2375:  "docker",
	3128:  "squid-http",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5060:  "sip",
	5432:  "postgresql",
	5672:  "amqp",
	5900:  "vnc",
	6379:  "redis",
	6443:  "kube-apiserver",
	8000:  "http-alt",
	8080:  "http-alt",
	8443:  "https-alt",
	9090:  "prometheus",
	9200:  "elasticsearch",
	11211: "memcached",
	27017: "mongod",
}

// Name returns the registered service name for a port. The second return
// value is false when the port has no entry.
func Name(port int) (string, bool) {
	name, ok := wellKnown[port]
	return name, ok
}

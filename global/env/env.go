package env

import (
	"net"
	"os"
)

var (
	LocalhostIP string
	ConfigPath  string
)

func init() {
	findLocalHostIP()
	initConfigPath()
}

func initConfigPath() {
	ConfigPath = os.Getenv("CONFIG_PATH")
	if ConfigPath == "" {
		ConfigPath = "./etc"
	}
}

// findLocalHostIP picks the last non loopback IPv4 address. It stays empty
// on hosts without one; the value only labels metrics.
func findLocalHostIP() {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return
	}

	for _, address := range addrs {
		// 检查ip地址判断是否回环地址
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				LocalhostIP = ipnet.IP.String()
			}
		}
	}
}

func GetLocalHostIP() string {
	return LocalhostIP
}

func SetDefaultConfigPath(path string) {
	ConfigPath = path
}

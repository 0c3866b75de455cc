package cmd

import (
	"os"
	"strings"

	"github.com/haierkeys/portfolio-dash/pkg/fileurl"
	"github.com/haierkeys/portfolio-dash/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// defaultSecretKeys 需要提示更换的默认密钥
var defaultSecretKeys = []string{
	"portfolio-dash-Auth-Token",
	"",
}

// resolveConfigPath 按优先级查找配置文件，都不存在时写入内置默认配置
func resolveConfigPath() (string, error) {
	if len(flags.dir) > 0 {
		if err := os.Chdir(flags.dir); err != nil {
			return "", errors.Wrap(err, "failed to change the current working directory")
		}
		bootstrapLogger.Debug("working directory changed", zap.String("dir", flags.dir))
	}

	if len(flags.config) > 0 {
		return flags.config, nil
	}
	for _, p := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(p) {
			return p, nil
		}
	}

	path := "config/config.yaml"
	bootstrapLogger.Warn("config file not found, creating default config")
	content := strings.Replace(configDefault, defaultSecretKeys[0], util.GetRandomString(32), 1)
	if _, err := fileurl.WriteIfMissing(path, []byte(content), 0644); err != nil {
		return "", errors.Wrap(err, "config file auto create error")
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}

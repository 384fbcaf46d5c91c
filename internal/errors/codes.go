package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeEnvFileMissing   Code = "ENV_FILE_MISSING"
	CodeCommandFailed    Code = "COMMAND_FAILED"
	CodePermissionError  Code = "PERMISSION_ERROR"
	CodeDownloadFailed   Code = "DOWNLOAD_FAILED"
	CodePatchFailed      Code = "PATCH_FAILED"
	CodeHashingFailed    Code = "HASHING_FAILED"
)

func (c Code) String() string {
	return string(c)
}

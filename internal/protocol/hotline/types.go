// Package hotline implements the wire codec for the Hotline transaction
// protocol: transaction framing, typed fields, and the binary sub-formats
// nested inside fields (user info, file info, paths, news listings).
package hotline

import "fmt"

// TranType identifies the purpose of a transaction on the wire. Values are
// taken from the published Hotline protocol; they are stable across server
// implementations.
type TranType uint16

// Known transaction types. Names follow the field names used by the
// protocol documentation rather than any particular server's source.
const (
	TranError               TranType = 0
	TranGetMsgs             TranType = 101
	TranNewMsg              TranType = 102
	TranOldPostNews         TranType = 103
	TranServerMsg           TranType = 104
	TranChatSend            TranType = 105
	TranChatMsg             TranType = 106
	TranLogin               TranType = 107
	TranSendInstantMsg      TranType = 108
	TranShowAgreement       TranType = 109
	TranDisconnectUser      TranType = 110
	TranNotifyChangeUser    TranType = 301
	TranNotifyDeleteUser    TranType = 302
	TranGetUserNameList     TranType = 300
	TranNotifyChatChangeUser TranType = 115
	TranNotifyChatDeleteUser TranType = 116
	TranNotifyChatSubject   TranType = 117
	TranJoinChat            TranType = 112
	TranLeaveChat           TranType = 113
	TranSetChatSubject      TranType = 114
	TranAgreed              TranType = 121
	TranGetFileNameList     TranType = 200
	TranDownloadFile        TranType = 202
	TranUploadFile          TranType = 203
	TranDeleteFile          TranType = 204
	TranNewFolder           TranType = 205
	TranMoveFile            TranType = 206
	TranGetFileInfo         TranType = 207
	TranSetFileInfo         TranType = 208
	TranMakeFileAlias       TranType = 209
	TranDownloadFldr        TranType = 210
	TranDownloadBanner      TranType = 212
	TranUploadFldr          TranType = 213
	TranGetClientInfoText   TranType = 215
	TranGetUserInfo         TranType = 216
	TranSetClientUserInfo   TranType = 217
	TranNewUser             TranType = 218
	TranDeleteUser          TranType = 219
	TranGetUser             TranType = 220
	TranSetUser             TranType = 221
	TranUserAccess          TranType = 222
	TranUserBroadcast       TranType = 223
	TranGetNewsCatNameList  TranType = 370
	TranGetNewsArtNameList  TranType = 371
	TranDelNewsItem         TranType = 380
	TranNewNewsFldr         TranType = 381
	TranNewNewsCat          TranType = 382
	TranGetNewsArtData      TranType = 400
	TranPostNewsArt         TranType = 410
	TranDelNewsArt          TranType = 411
	TranKeepAlive           TranType = 500
)

var tranTypeNames = map[TranType]string{
	TranError:                "Error",
	TranGetMsgs:               "GetMessageBoard",
	TranNewMsg:                "NewMessage",
	TranOldPostNews:           "OldPostNews",
	TranServerMsg:             "ServerMessage",
	TranChatSend:              "SendChat",
	TranChatMsg:               "ChatMessage",
	TranLogin:                 "Login",
	TranSendInstantMsg:        "SendInstantMessage",
	TranShowAgreement:         "ShowAgreement",
	TranDisconnectUser:        "DisconnectUser",
	TranNotifyChangeUser:      "NotifyUserChange",
	TranNotifyDeleteUser:      "NotifyUserDelete",
	TranGetUserNameList:       "GetUserNameList",
	TranNotifyChatChangeUser:  "NotifyChatChangeUser",
	TranNotifyChatDeleteUser:  "NotifyChatDeleteUser",
	TranNotifyChatSubject:     "NotifyChatSubject",
	TranJoinChat:              "JoinChat",
	TranLeaveChat:             "LeaveChat",
	TranSetChatSubject:        "SetChatSubject",
	TranAgreed:                "Agreed",
	TranGetFileNameList:       "GetFileNameList",
	TranDownloadFile:          "DownloadFile",
	TranUploadFile:            "UploadFile",
	TranNewFolder:             "NewFolder",
	TranDeleteFile:            "DeleteFile",
	TranMoveFile:              "MoveFile",
	TranGetFileInfo:           "GetFileInfo",
	TranSetFileInfo:           "SetFileInfo",
	TranMakeFileAlias:         "MakeFileAlias",
	TranDownloadFldr:          "DownloadFolder",
	TranDownloadBanner:        "DownloadBanner",
	TranUploadFldr:            "UploadFolder",
	TranGetClientInfoText:     "GetClientInfoText",
	TranGetUserInfo:           "GetUserInfo",
	TranSetClientUserInfo:     "SetClientUserInfo",
	TranNewUser:               "NewUser",
	TranDeleteUser:            "DeleteUser",
	TranGetUser:               "GetUser",
	TranSetUser:               "SetUser",
	TranUserAccess:            "UserAccess",
	TranUserBroadcast:         "UserBroadcast",
	TranGetNewsCatNameList:    "GetNewsCategoryList",
	TranGetNewsArtNameList:    "GetNewsArticleList",
	TranDelNewsItem:           "DeleteNewsItem",
	TranNewNewsFldr:           "NewNewsFolder",
	TranNewNewsCat:            "NewNewsCategory",
	TranGetNewsArtData:        "GetNewsArticleData",
	TranPostNewsArt:           "PostNewsArticle",
	TranDelNewsArt:            "DeleteNewsArticle",
	TranKeepAlive:             "KeepAlive",
}

// String implements fmt.Stringer so TranType values print by name in logs.
func (t TranType) String() string {
	if name, ok := tranTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TranType(%d)", uint16(t))
}

// FieldType identifies the semantic meaning of a transaction field's payload.
type FieldType uint16

// Known field types.
const (
	FieldError                 FieldType = 100
	FieldData                  FieldType = 101
	FieldUserName              FieldType = 102
	FieldUserIconId            FieldType = 104
	FieldUserLogin             FieldType = 105
	FieldUserPassword          FieldType = 106
	FieldRefNum                FieldType = 108
	FieldTransferSize          FieldType = 109
	FieldChatOptions           FieldType = 110
	FieldUserAlias             FieldType = 111
	FieldUserFlags             FieldType = 112
	FieldOptions               FieldType = 113
	FieldChatId                FieldType = 114
	FieldChatSubject           FieldType = 115
	FieldWaitingCount          FieldType = 116
	FieldServerAgreement       FieldType = 150
	FieldServerBanner          FieldType = 151
	FieldServerName            FieldType = 162
	FieldFileNameWithInfo      FieldType = 200
	FieldFileName              FieldType = 201
	FieldFilePath              FieldType = 202
	FieldFileResumeData        FieldType = 203
	FieldFileTransferOptions   FieldType = 204
	FieldFileTypeString        FieldType = 205
	FieldFileCreatorString     FieldType = 206
	FieldFileSize              FieldType = 207
	FieldFileCreateDate        FieldType = 208
	FieldFileModifyDate        FieldType = 209
	FieldFileComment           FieldType = 210
	FieldFileNewName           FieldType = 211
	FieldFileNewPath           FieldType = 212
	FieldFileType              FieldType = 213
	FieldImageData             FieldType = 214
	FieldUserNameWithInfo      FieldType = 300
	FieldNewsArtListData       FieldType = 321
	FieldNewsCatName           FieldType = 322
	FieldNewsCatListData15     FieldType = 323
	FieldNewsPath              FieldType = 325
	FieldNewsArtId             FieldType = 326
	FieldNewsArtDataFlav       FieldType = 327
	FieldNewsArtTitle          FieldType = 328
	FieldNewsArtPoster         FieldType = 329
	FieldNewsArtDate           FieldType = 330
	FieldNewsArtPrevArt        FieldType = 331
	FieldNewsArtNextArt        FieldType = 332
	FieldNewsArtData           FieldType = 333
	FieldNewsArtFlags          FieldType = 334
	FieldNewsArtParentArt      FieldType = 335
	FieldNewsArt1stChildArt    FieldType = 336
	FieldNewsArtRecurseDel     FieldType = 337
	FieldVersion               FieldType = 160
	FieldUserId                FieldType = 103
	FieldErrorText             FieldType = 161
	FieldUserAccess            FieldType = 354
)

var fieldTypeNames = map[FieldType]string{
	FieldError:               "Error",
	FieldData:                "Data",
	FieldUserName:            "UserName",
	FieldUserIconId:          "UserIconId",
	FieldUserLogin:           "UserLogin",
	FieldUserPassword:        "UserPassword",
	FieldRefNum:              "ReferenceNumber",
	FieldTransferSize:        "TransferSize",
	FieldChatOptions:         "ChatOptions",
	FieldUserAlias:           "UserAlias",
	FieldUserFlags:           "UserFlags",
	FieldOptions:             "Options",
	FieldChatId:              "ChatId",
	FieldChatSubject:         "ChatSubject",
	FieldWaitingCount:        "WaitingCount",
	FieldServerAgreement:     "ServerAgreement",
	FieldServerBanner:        "ServerBanner",
	FieldServerName:          "ServerName",
	FieldFileNameWithInfo:    "FileNameWithInfo",
	FieldFileName:            "FileName",
	FieldFilePath:            "FilePath",
	FieldFileResumeData:      "FileResumeData",
	FieldFileTransferOptions: "FileTransferOptions",
	FieldFileTypeString:      "FileTypeString",
	FieldFileCreatorString:   "FileCreatorString",
	FieldFileSize:            "FileSize",
	FieldFileComment:         "FileComment",
	FieldFileNewName:         "FileNewName",
	FieldFileNewPath:         "FileNewPath",
	FieldFileType:            "FileType",
	FieldImageData:           "ImageData",
	FieldUserNameWithInfo:    "UserNameWithInfo",
	FieldNewsArtListData:     "NewsArticleListData",
	FieldNewsCatName:         "NewsCategoryName",
	FieldNewsCatListData15:   "NewsCategoryListData15",
	FieldNewsPath:            "NewsPath",
	FieldNewsArtId:           "NewsArticleId",
	FieldNewsArtDataFlav:     "NewsArticleDataFlavor",
	FieldNewsArtTitle:        "NewsArticleTitle",
	FieldNewsArtPoster:       "NewsArticlePoster",
	FieldNewsArtDate:         "NewsArticleDate",
	FieldNewsArtData:         "NewsArticleData",
	FieldNewsArtFlags:        "NewsArticleFlags",
	FieldVersion:             "VersionNumber",
	FieldUserId:              "UserId",
	FieldErrorText:           "ErrorText",
}

// String implements fmt.Stringer so FieldType values print by name in logs.
func (f FieldType) String() string {
	if name, ok := fieldTypeNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", uint16(f))
}
